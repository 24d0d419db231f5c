package asset

import "strings"

// DefaultMapJSON is the demo map: a tiled baseplate, brick columns, a wall and a few loose crates
const DefaultMapJSON = `[
{"c":{"r":75,"g":105,"b":60},"s":{"x":50,"y":2,"z":50},"p":{"x":-75,"y":-1,"z":-75},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":75,"g":120,"b":60},"s":{"x":50,"y":2,"z":50},"p":{"x":-75,"y":-1,"z":-25},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":75,"g":105,"b":60},"s":{"x":50,"y":2,"z":50},"p":{"x":-75,"y":-1,"z":25},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":75,"g":120,"b":60},"s":{"x":50,"y":2,"z":50},"p":{"x":-75,"y":-1,"z":75},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":75,"g":120,"b":60},"s":{"x":50,"y":2,"z":50},"p":{"x":-25,"y":-1,"z":-75},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":75,"g":105,"b":60},"s":{"x":50,"y":2,"z":50},"p":{"x":-25,"y":-1,"z":-25},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":75,"g":120,"b":60},"s":{"x":50,"y":2,"z":50},"p":{"x":-25,"y":-1,"z":25},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":75,"g":105,"b":60},"s":{"x":50,"y":2,"z":50},"p":{"x":-25,"y":-1,"z":75},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":75,"g":105,"b":60},"s":{"x":50,"y":2,"z":50},"p":{"x":25,"y":-1,"z":-75},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":75,"g":120,"b":60},"s":{"x":50,"y":2,"z":50},"p":{"x":25,"y":-1,"z":-25},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":75,"g":105,"b":60},"s":{"x":50,"y":2,"z":50},"p":{"x":25,"y":-1,"z":25},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":75,"g":120,"b":60},"s":{"x":50,"y":2,"z":50},"p":{"x":25,"y":-1,"z":75},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":75,"g":120,"b":60},"s":{"x":50,"y":2,"z":50},"p":{"x":75,"y":-1,"z":-75},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":75,"g":105,"b":60},"s":{"x":50,"y":2,"z":50},"p":{"x":75,"y":-1,"z":-25},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":75,"g":120,"b":60},"s":{"x":50,"y":2,"z":50},"p":{"x":75,"y":-1,"z":25},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":75,"g":105,"b":60},"s":{"x":50,"y":2,"z":50},"p":{"x":75,"y":-1,"z":75},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":196,"g":40,"b":28},"s":{"x":4,"y":4,"z":4},"p":{"x":30,"y":2,"z":10},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":196,"g":40,"b":28},"s":{"x":4,"y":4,"z":4},"p":{"x":30,"y":6,"z":10},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":196,"g":40,"b":28},"s":{"x":4,"y":4,"z":4},"p":{"x":30,"y":10,"z":10},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":196,"g":40,"b":28},"s":{"x":4,"y":4,"z":4},"p":{"x":30,"y":14,"z":10},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":196,"g":40,"b":28},"s":{"x":4,"y":4,"z":4},"p":{"x":30,"y":18,"z":10},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":99,"g":95,"b":98},"s":{"x":6,"y":1,"z":6},"p":{"x":30,"y":22.5,"z":10},"r":{"x":0,"y":45,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":13,"g":105,"b":172},"s":{"x":4,"y":4,"z":4},"p":{"x":-20,"y":2,"z":-35},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":13,"g":105,"b":172},"s":{"x":4,"y":4,"z":4},"p":{"x":-20,"y":6,"z":-35},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":13,"g":105,"b":172},"s":{"x":4,"y":4,"z":4},"p":{"x":-20,"y":10,"z":-35},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":13,"g":105,"b":172},"s":{"x":4,"y":4,"z":4},"p":{"x":-20,"y":14,"z":-35},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":13,"g":105,"b":172},"s":{"x":4,"y":4,"z":4},"p":{"x":-20,"y":18,"z":-35},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":99,"g":95,"b":98},"s":{"x":6,"y":1,"z":6},"p":{"x":-20,"y":22.5,"z":-35},"r":{"x":0,"y":45,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":245,"g":205,"b":48},"s":{"x":4,"y":4,"z":4},"p":{"x":10,"y":2,"z":40},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":245,"g":205,"b":48},"s":{"x":4,"y":4,"z":4},"p":{"x":10,"y":6,"z":40},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":245,"g":205,"b":48},"s":{"x":4,"y":4,"z":4},"p":{"x":10,"y":10,"z":40},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":245,"g":205,"b":48},"s":{"x":4,"y":4,"z":4},"p":{"x":10,"y":14,"z":40},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":245,"g":205,"b":48},"s":{"x":4,"y":4,"z":4},"p":{"x":10,"y":18,"z":40},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":99,"g":95,"b":98},"s":{"x":6,"y":1,"z":6},"p":{"x":10,"y":22.5,"z":40},"r":{"x":0,"y":45,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":161,"g":165,"b":162},"s":{"x":4,"y":4,"z":4},"p":{"x":-45,"y":2,"z":20},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":161,"g":165,"b":162},"s":{"x":4,"y":4,"z":4},"p":{"x":-45,"y":6,"z":20},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":161,"g":165,"b":162},"s":{"x":4,"y":4,"z":4},"p":{"x":-45,"y":10,"z":20},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":161,"g":165,"b":162},"s":{"x":4,"y":4,"z":4},"p":{"x":-45,"y":14,"z":20},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":161,"g":165,"b":162},"s":{"x":4,"y":4,"z":4},"p":{"x":-45,"y":18,"z":20},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":99,"g":95,"b":98},"s":{"x":6,"y":1,"z":6},"p":{"x":-45,"y":22.5,"z":20},"r":{"x":0,"y":45,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":218,"g":134,"b":122},"s":{"x":4,"y":3,"z":1},"p":{"x":-10,"y":1.5,"z":-15},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":218,"g":134,"b":122},"s":{"x":4,"y":3,"z":1},"p":{"x":-6,"y":1.5,"z":-15},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":218,"g":134,"b":122},"s":{"x":4,"y":3,"z":1},"p":{"x":-2,"y":1.5,"z":-15},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":218,"g":134,"b":122},"s":{"x":4,"y":3,"z":1},"p":{"x":2,"y":1.5,"z":-15},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":218,"g":134,"b":122},"s":{"x":4,"y":3,"z":1},"p":{"x":6,"y":1.5,"z":-15},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":218,"g":134,"b":122},"s":{"x":4,"y":3,"z":1},"p":{"x":10,"y":1.5,"z":-15},"r":{"x":0,"y":0,"z":0},"t":0,"a":true,"co":true},
{"c":{"r":160,"g":95,"b":53},"s":{"x":2,"y":2,"z":2},"p":{"x":5,"y":6,"z":5},"r":{"x":0,"y":30,"z":0},"t":0,"a":false,"co":true},
{"c":{"r":160,"g":95,"b":53},"s":{"x":2,"y":2,"z":2},"p":{"x":-6,"y":6,"z":8},"r":{"x":15,"y":0,"z":10},"t":0,"a":false,"co":true},
{"c":{"r":242,"g":243,"b":243},"s":{"x":3,"y":1,"z":3},"p":{"x":8,"y":4,"z":-6},"r":{"x":0,"y":0,"z":0},"t":0.5,"a":false,"co":true}
]
`

// DefaultMap decodes the embedded demo map
func DefaultMap() ([]Part, error) {
	return DecodeMap(strings.NewReader(DefaultMapJSON))
}

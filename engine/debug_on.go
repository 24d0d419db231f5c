//go:build debug

package engine

const debugBuild = true

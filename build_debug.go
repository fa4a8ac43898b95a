//go:build debug

package summary

const debugBuild = true

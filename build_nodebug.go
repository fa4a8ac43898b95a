//go:build !debug

package summary

const debugBuild = false

//go:build !race

package summary

const raceBuild = false

package summary

import "github.com/go-kit/log"

func newProviderLogger(l log.Logger) log.Logger {
	if l == nil {
		return log.NewNopLogger()
	}
	return log.With(l, "component", "summary_provider")
}

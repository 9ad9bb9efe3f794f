package applog_test

import (
	"testing"

	"github.com/artpar/deadmock/adapters/applog"
)

func TestNew_VerboseSetsDebugLevel(t *testing.T) {
	quiet := applog.New(false)
	if quiet.Info.GetLevel().String() != "info" {
		t.Errorf("quiet level = %s, want info", quiet.Info.GetLevel())
	}

	verbose := applog.New(true)
	if verbose.Info.GetLevel().String() != "debug" {
		t.Errorf("verbose level = %s, want debug", verbose.Info.GetLevel())
	}
}

func TestDiscard_DoesNotPanic(t *testing.T) {
	sinks := applog.Discard()
	sinks.Info.Info().Msg("ignored")
	sinks.Error.Error().Msg("ignored")
}

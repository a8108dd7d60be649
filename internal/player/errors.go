package player

import (
	"fmt"

	"github.com/xentlabs/xent-sub001/internal/xerr"
)

func unknownPlayerTypeError(playerType string) error {
	return fmt.Errorf("unknown player type %q: %w", playerType, xerr.ErrConfiguration)
}

func missingOptionError(playerType, option string) error {
	return fmt.Errorf("player type %q requires option %q: %w", playerType, option, xerr.ErrConfiguration)
}

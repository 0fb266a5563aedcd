package config

import (
	"errors"
	"fmt"
)

var (
	ErrNoRoot        = errors.New("document root must be set")
	ErrNoInterpreter = errors.New("CGI interpreter must be set")
	ErrNoListCommand = errors.New("list command must be set when listing via command")
)

// Validate reports the first setting that makes the server unable to work.
func (c *Config) Validate() error {
	switch {
	case c.NET.ReadBufferSize <= 0:
		return fmt.Errorf("read buffer size must be positive, got %d", c.NET.ReadBufferSize)
	case c.NET.WriteBufferSize <= 0:
		return fmt.Errorf("write buffer size must be positive, got %d", c.NET.WriteBufferSize)
	case c.NET.AcceptLoopInterruptPeriod <= 0:
		return fmt.Errorf("accept loop interrupt period must be positive, got %s", c.NET.AcceptLoopInterruptPeriod)
	case c.NET.ReadTimeout < 0:
		return fmt.Errorf("read timeout can't be negative, got %s", c.NET.ReadTimeout)
	case len(c.FS.Root) == 0:
		return ErrNoRoot
	case len(c.CGI.Interpreter) == 0:
		return ErrNoInterpreter
	}

	switch c.FS.Listing {
	case ListingNative:
	case ListingCommand:
		if len(c.FS.ListCommand) == 0 {
			return ErrNoListCommand
		}
	default:
		return fmt.Errorf("unknown listing mode %q", c.FS.Listing)
	}

	return nil
}

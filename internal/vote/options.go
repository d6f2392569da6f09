package vote

import (
	"fmt"

	"github.com/zhulik/vote/internal/core"
)

// Options are the two vote choices and the page title. They are resolved once
// at startup and never change.
type Options struct {
	A     string
	B     string
	Title string
}

func OptionsFromConfig(config core.Config) Options {
	return Options{
		A:     config.OptionA(),
		B:     config.OptionB(),
		Title: config.Title(),
	}
}

func (o Options) Validate() error {
	switch {
	case o.A == "" || o.B == "":
		return fmt.Errorf("%w: options must not be empty", core.ErrInvalidOptions)
	case o.A == o.B:
		return fmt.Errorf("%w: options must differ, both are %q", core.ErrInvalidOptions, o.A)
	case o.A == core.ResetVote || o.B == core.ResetVote:
		return fmt.Errorf("%w: %q is reserved", core.ErrInvalidOptions, core.ResetVote)
	}

	return nil
}

// Has reports whether option is one of the two vote choices.
func (o Options) Has(option string) bool {
	return option == o.A || option == o.B
}

func (o Options) Keys() []string {
	return []string{o.A, o.B}
}

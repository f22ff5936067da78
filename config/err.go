package config

import (
	"errors"

	"github.com/ezrec/monocle/translate"
)

var f = translate.From

var (
	ErrConfigSyntax   = errors.New(f("configuration syntax"))
	ErrFeatureUnknown = errors.New(f("feature unknown"))
)

// ErrSetting indicates an invalid configuration value.
type ErrSetting struct {
	Key   string
	Value any
	Err   error
}

func (err ErrSetting) Error() string {
	if err.Err != nil {
		return f("%v: '%v' invalid: %v", err.Key, err.Value, err.Err)
	}
	return f("%v: '%v' invalid", err.Key, err.Value)
}

func (err ErrSetting) Unwrap() error {
	return err.Err
}

package config

import (
	"errors"

	"github.com/ezrec/rvi/translate"
)

var f = translate.From

var (
	ErrRegisterKey       = errors.New(f("register key must be x0-x31"))
	ErrRegisterValue     = errors.New(f("register value must be a 32-bit integer"))
	ErrRegisterDuplicate = errors.New(f("register set more than once"))
	ErrBuckets           = errors.New(f("buckets must be positive"))
)

// ErrRegister reports the register entry that failed to apply.
type ErrRegister struct {
	Name string
	Err  error
}

func (err *ErrRegister) Error() string {
	return f("register %v: %v", err.Name, err.Err)
}

func (err *ErrRegister) Unwrap() error {
	return err.Err
}

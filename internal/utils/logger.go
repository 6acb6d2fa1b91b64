package utils

import (
	"go.uber.org/zap"
)

// NewLogger builds a sugared zap logger. Development mode enables console
// encoding and debug level.
func NewLogger(dev bool) (*zap.SugaredLogger, error) {
	var z *zap.Logger
	var err error
	if dev {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return z.Sugar(), nil
}

package configuration

import (
	"reflect"

	"github.com/fansync/fansync/internal/hwio"
	"github.com/mitchellh/mapstructure"
)

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		controlModeHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// controlModeHookFunc decodes "dc" | "pwm" | "auto" strings into a
// hwio.ControlMode, rejecting unknown values at load time instead of
// at first use.
func controlModeHookFunc() mapstructure.DecodeHookFuncType {
	controlModeType := reflect.TypeOf(hwio.ControlMode(""))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != controlModeType {
			return data, nil
		}

		value, isString := data.(string)
		if !isString {
			return data, nil
		}
		return hwio.ParseControlMode(value)
	}
}

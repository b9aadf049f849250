package util

import (
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

var colorsOptions = map[string]color.Attribute{
	"red":       color.FgHiRed,
	"green":     color.FgGreen,
	"yellow":    color.FgYellow,
	"underline": color.Underline,
	"bold":      color.Bold,
	"bgRed":     color.BgRed,
	"bgGreen":   color.BgGreen,
}

func ColorOutput(text string, colorOptions ...string) string {
	attributes := []color.Attribute{}
	for _, option := range colorOptions {
		if o, ok := colorsOptions[option]; ok {
			attributes = append(attributes, o)
		}
	}
	c := color.New(attributes...)
	return c.Sprint(text)
}

// SignColor picks red for negative values and green otherwise.
func SignColor(value decimal.Decimal) string {
	if value.IsNegative() {
		return "red"
	}
	return "green"
}

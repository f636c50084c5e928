package encode

import (
	"strings"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	KindColor ColorAttr = iota
	NameColor
	FieldColor
	ValueColor
	RefColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			KindColor:  color.RGB(128, 168, 196).SprintfFunc(),
			NameColor:  color.RGB(196, 96, 16).SprintfFunc(),
			FieldColor: color.RGB(74, 92, 138).SprintfFunc(),
			ValueColor: color.RGB(128, 216, 236).SprintfFunc(),
			RefColor:   color.RGB(168, 0, 196).SprintfFunc(),
			SepColor:   color.RGB(255, 0, 196).SprintfFunc(),
		},
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(a ColorAttr, s string) string {
	return c.Get(a)(s)
}

func (c *Colors) Get(a ColorAttr) func(string, ...any) string {
	f := c.Map[a]
	if f == nil {
		return c.Default
	}
	return f
}

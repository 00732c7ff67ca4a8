package pongo

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
)

func registerDefaultFilters() {
	register := func(name string, fn pongo2.FilterFunction) {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
	register("checked", filterChecked)
	register("selected", filterSelected)
}

// filterChecked and filterSelected emit the attribute when the answer (a
// string or list of strings) holds the option value given as parameter.
func filterChecked(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if contains(in, param) {
		return pongo2.AsSafeValue(" checked"), nil
	}
	return pongo2.AsValue(""), nil
}

func filterSelected(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if contains(in, param) {
		return pongo2.AsSafeValue(" selected"), nil
	}
	return pongo2.AsValue(""), nil
}

func contains(in, param *pongo2.Value) bool {
	if in == nil || param == nil || in.IsNil() {
		return false
	}
	want := param.String()
	switch v := in.Interface().(type) {
	case string:
		return v == want
	case []string:
		for _, s := range v {
			if s == want {
				return true
			}
		}
	case []any:
		for _, s := range v {
			if fmt.Sprint(s) == want {
				return true
			}
		}
	}
	return false
}

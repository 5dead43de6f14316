package pages

import apptheme "pureui/internal/theme"

func themeKey(raw string) apptheme.Theme {
	if t, err := apptheme.Parse(raw); err == nil {
		return t
	}
	return apptheme.DefaultTheme
}

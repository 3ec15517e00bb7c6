package styles

import "image/color"

// RenderGradientText applies a gradient to text
func RenderGradientText(text string, startColor, endColor color.Color, bold bool) string {
	if bold {
		return ApplyBoldGradient(text, startColor, endColor)
	}
	return ApplyGradient(text, startColor, endColor)
}

// RenderThemeGradient renders text with the current theme's primary gradient
func RenderThemeGradient(text string, bold bool) string {
	theme := CurrentTheme()
	return RenderGradientText(text, theme.Primary, theme.Secondary, bold)
}

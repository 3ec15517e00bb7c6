package styles

// NewHarborTheme creates the default Trace-Aid theme: deep navy with teal
// accents.
func NewHarborTheme() *Theme {
	return &Theme{
		Name:   "harbor",
		IsDark: true,

		// Brand colors
		Primary:   ParseHex("#0E7490"), // Deep teal
		Secondary: ParseHex("#22D3EE"), // Bright cyan
		Tertiary:  ParseHex("#38BDF8"), // Sky
		Accent:    ParseHex("#2DD4BF"), // Sea green

		// Background colors
		BgBase:      ParseHex("#0B1623"), // Harbor night
		BgSubtle:    ParseHex("#16283C"), // Subtle contrast
		BgOverlay:   ParseHex("#1F3A54"), // For dialogs
		BgHighlight: ParseHex("#2B4C6B"), // Highlighted rows

		// Foreground colors
		FgBase:     ParseHex("#E6EEF6"), // Sea foam white
		FgMuted:    ParseHex("#93A8BC"), // Muted text
		FgSubtle:   ParseHex("#5E7490"), // Subtle text
		FgInverted: ParseHex("#0B1623"), // For light backgrounds

		// Border colors
		Border:      ParseHex("#2B4C6B"), // Quiet border
		BorderFocus: ParseHex("#2DD4BF"), // Sea green focus

		// Semantic colors
		Success: ParseHex("#34D399"), // Emerald
		Error:   ParseHex("#F87171"), // Soft red
		Warning: ParseHex("#FBBF24"), // Amber
		Info:    ParseHex("#38BDF8"), // Sky

		// Palette colors
		Blue:      ParseHex("#3B82F6"),
		BlueLight: ParseHex("#7DD3FC"),
		Green:     ParseHex("#34D399"),
		Yellow:    ParseHex("#FBBF24"),
		Purple:    ParseHex("#A78BFA"),
		Orange:    ParseHex("#FB923C"),
	}
}

// NewPaperTheme creates a light theme for bright rooms.
func NewPaperTheme() *Theme {
	return &Theme{
		Name:   "paper",
		IsDark: false,

		// Brand colors
		Primary:   ParseHex("#0F766E"), // Teal 700
		Secondary: ParseHex("#0891B2"), // Cyan 600
		Tertiary:  ParseHex("#0284C7"), // Sky 600
		Accent:    ParseHex("#0D9488"), // Teal 600

		// Background colors
		BgBase:      ParseHex("#FAFAF7"), // Warm paper
		BgSubtle:    ParseHex("#EDEDE8"), // Card background
		BgOverlay:   ParseHex("#E2E2DC"), // For dialogs
		BgHighlight: ParseHex("#D6E4E0"), // Highlighted rows

		// Foreground colors
		FgBase:     ParseHex("#1C2A38"), // Ink
		FgMuted:    ParseHex("#5B6B7A"), // Muted text
		FgSubtle:   ParseHex("#8A98A5"), // Subtle text
		FgInverted: ParseHex("#FAFAF7"), // For dark backgrounds

		// Border colors
		Border:      ParseHex("#CBD5D1"),
		BorderFocus: ParseHex("#0D9488"),

		// Semantic colors
		Success: ParseHex("#059669"), // Emerald 600
		Error:   ParseHex("#DC2626"), // Red 600
		Warning: ParseHex("#D97706"), // Amber 600
		Info:    ParseHex("#0284C7"), // Sky 600

		// Palette colors
		Blue:      ParseHex("#2563EB"),
		BlueLight: ParseHex("#60A5FA"),
		Green:     ParseHex("#059669"),
		Yellow:    ParseHex("#CA8A04"),
		Purple:    ParseHex("#7C3AED"),
		Orange:    ParseHex("#EA580C"),
	}
}

// NewSlateTheme creates a neutral dark theme.
func NewSlateTheme() *Theme {
	return &Theme{
		Name:   "slate",
		IsDark: true,

		// Brand colors
		Primary:   ParseHex("#60A5FA"), // Sky blue
		Secondary: ParseHex("#A78BFA"), // Violet
		Tertiary:  ParseHex("#F472B6"), // Pink
		Accent:    ParseHex("#34D399"), // Emerald

		// Background colors
		BgBase:      ParseHex("#0F172A"), // Slate 900
		BgSubtle:    ParseHex("#1E293B"), // Slate 800
		BgOverlay:   ParseHex("#334155"), // Slate 700
		BgHighlight: ParseHex("#475569"), // Slate 600

		// Foreground colors
		FgBase:     ParseHex("#F8FAFC"), // Slate 50
		FgMuted:    ParseHex("#CBD5E1"), // Slate 300
		FgSubtle:   ParseHex("#94A3B8"), // Slate 400
		FgInverted: ParseHex("#0F172A"), // Slate 900

		// Border colors
		Border:      ParseHex("#334155"), // Slate 700
		BorderFocus: ParseHex("#60A5FA"), // Sky 400

		// Semantic colors
		Success: ParseHex("#34D399"), // Emerald 400
		Error:   ParseHex("#F87171"), // Red 400
		Warning: ParseHex("#FBBF24"), // Amber 400
		Info:    ParseHex("#60A5FA"), // Sky 400

		// Palette colors
		Blue:      ParseHex("#60A5FA"),
		BlueLight: ParseHex("#93C5FD"),
		Green:     ParseHex("#34D399"),
		Yellow:    ParseHex("#FBBF24"),
		Purple:    ParseHex("#A78BFA"),
		Orange:    ParseHex("#FB923C"),
	}
}

package mealplanner

import "embed"

// ContentFS contains the markdown shown on the weekly outlook.
//
//go:embed content/outlook/*.md
var ContentFS embed.FS

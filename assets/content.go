// Package assets embeds the game's data files.
package assets

import _ "embed"

// ContentLua defines every monster template and starter consumable.
//
//go:embed content.lua
var ContentLua string

package ui

import (
	"fmt"
	neturl "net/url"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/inburst/prhub/config"
	"github.com/inburst/prhub/datasource"
	"github.com/lucasb-eyer/go-colorful"
)

// AvatarWidth is the number of cells every avatar takes.
const AvatarWidth = 2

type AvatarVariant int

const (
	AvatarImage AvatarVariant = iota
	AvatarInitials
)

func AvatarVariantFromConfig(avatars string) AvatarVariant {
	if avatars == config.AvatarsInitials {
		return AvatarInitials
	}
	return AvatarImage
}

// Avatar renders identities as a two cell swatch. The image variant falls
// back to initials for every identity whose image cannot be shown.
type Avatar struct {
	Variant AvatarVariant
}

// Resolve decides what is shown for id on this render pass.
func (a Avatar) Resolve(id datasource.Identity) AvatarVariant {
	if a.Variant == AvatarInitials || !imageURLUsable(id.ImageURL) {
		return AvatarInitials
	}
	return AvatarImage
}

func (a Avatar) Render(id datasource.Identity) string {
	if a.Resolve(id) == AvatarInitials {
		return lipgloss.NewStyle().
			Foreground(white).
			Background(lipgloss.Color(swatchColor(id.DisplayName + id.UniqueName))).
			Render(fmt.Sprintf("%-*s", AvatarWidth, id.Initials()))
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(swatchColor(id.ImageURL))).
		Render(fmt.Sprintf("%*s", AvatarWidth, ""))
}

func imageURLUsable(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := neturl.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// swatchColor maps key onto a stable colour of the hue wheel.
func swatchColor(key string) string {
	hue := float64(xxhash.Sum64String(key) % 360)
	return colorful.Hcl(hue, 0.5, 0.6).Clamped().Hex()
}

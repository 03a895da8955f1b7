package rating

import (
	"fmt"
	"net/url"
	"strings"
)

// Display fallbacks for sparsely filled user rows. Cards always render with
// a complete set of fields; absent values resolve to these.
const (
	defaultCardName        = "Пользователь"
	defaultCardUsername    = "user"
	defaultCardDescription = "Участник сообщества STARS"
	defaultCardTags        = "#STARS #Участник ⭐"
	defaultMaxStars        = 5000
)

func resolveCardName(name string) string {
	if name == "" {
		return defaultCardName
	}
	return name
}

// resolveCardUsername derives the display handle from the email local part
func resolveCardUsername(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return defaultCardUsername
	}
	return local
}

// resolveCardAvatar falls back to a generated initials avatar
func resolveCardAvatar(image, name string) string {
	if image != "" {
		return image
	}
	if name == "" {
		name = "User"
	}
	return fmt.Sprintf(
		"https://ui-avatars.com/api/?name=%s&background=3b82f6&color=fff",
		url.QueryEscape(name),
	)
}

func resolveCardDescription(description string) string {
	if description == "" {
		return defaultCardDescription
	}
	return description
}

func resolveCardTags(tags string) string {
	if tags == "" {
		return defaultCardTags
	}
	return tags
}

func resolveMaxStars(maxStars int) int {
	if maxStars <= 0 {
		return defaultMaxStars
	}
	return maxStars
}

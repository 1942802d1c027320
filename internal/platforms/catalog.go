// Package platforms holds the static adapter catalog: which external sites
// are checked per query type and how their responses are interpreted. The
// catalog is configuration data, not behavior; adapters have no identity
// beyond their name, which doubles as the display key.
package platforms

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hakim/osintdash/internal/models"
)

// Adapter describes a single integration against one external data source.
// URLTemplate contains at most one %s placeholder for the escaped query;
// templates without a placeholder are fixed targets.
type Adapter struct {
	Name        string
	URLTemplate string
	Kind        models.ResponseKind
}

// URL renders the adapter's target URL for a query
func (a Adapter) URL(query string) string {
	if !strings.Contains(a.URLTemplate, "%s") {
		return a.URLTemplate
	}
	return fmt.Sprintf(a.URLTemplate, url.PathEscape(query))
}

// ForUsername returns every platform checked for a username query, in
// display order: social, professional, gaming, content, forums.
func ForUsername() []Adapter {
	return []Adapter{
		// Social media
		{Name: "GitHub", URLTemplate: "https://api.github.com/users/%s", Kind: models.KindAPI},
		{Name: "Reddit", URLTemplate: "https://www.reddit.com/user/%s/about.json", Kind: models.KindAPI},
		{Name: "Instagram", URLTemplate: "https://www.instagram.com/%s/?__a=1", Kind: models.KindWeb},
		{Name: "Twitter/X", URLTemplate: "https://twitter.com/%s", Kind: models.KindWeb},
		{Name: "TikTok", URLTemplate: "https://www.tiktok.com/@%s", Kind: models.KindWeb},
		{Name: "YouTube", URLTemplate: "https://www.youtube.com/@%s", Kind: models.KindWeb},
		{Name: "Twitch", URLTemplate: "https://www.twitch.tv/%s", Kind: models.KindWeb},
		{Name: "Medium", URLTemplate: "https://medium.com/@%s", Kind: models.KindWeb},
		{Name: "Dev.to", URLTemplate: "https://dev.to/%s", Kind: models.KindWeb},
		{Name: "Snapchat", URLTemplate: "https://www.snapchat.com/add/%s", Kind: models.KindWeb},
		{Name: "Facebook", URLTemplate: "https://www.facebook.com/%s", Kind: models.KindWeb},
		{Name: "Telegram", URLTemplate: "https://t.me/%s", Kind: models.KindWeb},
		{Name: "Discord", URLTemplate: "https://discord.com/users/%s", Kind: models.KindWeb},
		{Name: "Mastodon", URLTemplate: "https://mastodon.social/@%s", Kind: models.KindWeb},
		{Name: "Bluesky", URLTemplate: "https://bsky.app/profile/%s", Kind: models.KindWeb},

		// Professional
		{Name: "LinkedIn", URLTemplate: "https://www.linkedin.com/in/%s", Kind: models.KindWeb},
		{Name: "AngelList", URLTemplate: "https://angel.co/u/%s", Kind: models.KindWeb},
		{Name: "HackerNews", URLTemplate: "https://news.ycombinator.com/user?id=%s", Kind: models.KindWeb},
		{Name: "StackOverflow", URLTemplate: "https://stackoverflow.com/users/%s", Kind: models.KindWeb},
		{Name: "GitLab", URLTemplate: "https://gitlab.com/%s", Kind: models.KindWeb},
		{Name: "Bitbucket", URLTemplate: "https://bitbucket.org/%s", Kind: models.KindWeb},
		{Name: "Codepen", URLTemplate: "https://codepen.io/%s", Kind: models.KindWeb},
		{Name: "Kaggle", URLTemplate: "https://www.kaggle.com/%s", Kind: models.KindWeb},

		// Gaming
		{Name: "Steam", URLTemplate: "https://steamcommunity.com/id/%s", Kind: models.KindWeb},
		{Name: "Discord.bio", URLTemplate: "https://discord.bio/p/%s", Kind: models.KindWeb},
		{Name: "Roblox", URLTemplate: "https://www.roblox.com/users/profile?username=%s", Kind: models.KindWeb},
		{Name: "Epic Games", URLTemplate: "https://www.epicgames.com/id/%s", Kind: models.KindWeb},
		{Name: "Xbox", URLTemplate: "https://www.xbox.com/en-US/Profile?Gamertag=%s", Kind: models.KindWeb},
		{Name: "PlayStation", URLTemplate: "https://psnprofiles.com/%s", Kind: models.KindWeb},

		// Content & creative
		{Name: "Pinterest", URLTemplate: "https://www.pinterest.com/%s", Kind: models.KindWeb},
		{Name: "Flickr", URLTemplate: "https://www.flickr.com/people/%s", Kind: models.KindWeb},
		{Name: "Vimeo", URLTemplate: "https://vimeo.com/%s", Kind: models.KindWeb},
		{Name: "SoundCloud", URLTemplate: "https://soundcloud.com/%s", Kind: models.KindWeb},
		{Name: "Behance", URLTemplate: "https://www.behance.net/%s", Kind: models.KindWeb},
		{Name: "Dribbble", URLTemplate: "https://dribbble.com/%s", Kind: models.KindWeb},
		{Name: "DeviantArt", URLTemplate: "https://www.deviantart.com/%s", Kind: models.KindWeb},
		{Name: "ArtStation", URLTemplate: "https://www.artstation.com/%s", Kind: models.KindWeb},
		{Name: "Spotify", URLTemplate: "https://open.spotify.com/user/%s", Kind: models.KindWeb},
		{Name: "Patreon", URLTemplate: "https://www.patreon.com/%s", Kind: models.KindWeb},

		// Forums & communities
		{Name: "Quora", URLTemplate: "https://www.quora.com/profile/%s", Kind: models.KindWeb},
		{Name: "ProductHunt", URLTemplate: "https://www.producthunt.com/@%s", Kind: models.KindWeb},
		{Name: "About.me", URLTemplate: "https://about.me/%s", Kind: models.KindWeb},
		{Name: "Keybase", URLTemplate: "https://keybase.io/%s", Kind: models.KindWeb},
		{Name: "Linktree", URLTemplate: "https://linktr.ee/%s", Kind: models.KindWeb},
		{Name: "Gravatar", URLTemplate: "https://en.gravatar.com/%s", Kind: models.KindWeb},
		{Name: "WordPress", URLTemplate: "https://%s.wordpress.com", Kind: models.KindWeb},
		{Name: "Blogger", URLTemplate: "https://%s.blogspot.com", Kind: models.KindWeb},
	}
}

// PasteSites returns the paste-site checks run for a username query
func PasteSites() []Adapter {
	return []Adapter{
		{Name: "Pastebin", URLTemplate: "https://pastebin.com/u/%s", Kind: models.KindPaste},
		{Name: "GitHub Gists", URLTemplate: "https://gist.github.com/%s", Kind: models.KindPaste},
		{Name: "Ghostbin", URLTemplate: "https://ghostbin.co/paste/%s", Kind: models.KindPaste},
	}
}

// ForEmailFootprint returns the public-footprint checks run for an email
// query. The Gravatar check is keyed by the address's local part; the GitHub
// user search takes the full address as its query.
func ForEmailFootprint(localPart string) []Adapter {
	return []Adapter{
		{Name: "Gravatar", URLTemplate: "https://gravatar.com/" + url.PathEscape(localPart), Kind: models.KindProfile},
		{Name: "GitHub (email)", URLTemplate: "https://api.github.com/search/users?q=%s", Kind: models.KindAPI},
	}
}

// SpamReportSites returns the caller-reputation checks run for a phone query
func SpamReportSites() []Adapter {
	return []Adapter{
		{Name: "WhoCalledMe", URLTemplate: "https://whocalled.me/%s", Kind: models.KindWeb},
		{Name: "CallerId", URLTemplate: "https://calleridtest.com/number/%s", Kind: models.KindWeb},
	}
}

// SubdomainWordlist is the fixed candidate list used for brute-force
// subdomain enumeration on email-domain queries.
func SubdomainWordlist() []string {
	return []string{
		"www", "mail", "ftp", "admin", "blog", "shop", "api", "dev", "staging",
		"test", "vpn", "ssh", "cdn", "portal", "app", "mobile", "webmail",
		"secure", "remote", "support",
	}
}

package models

// AdapterResult is one platform adapter's answer for a query.
// Exactly one of the three outcomes holds: found, not found, or errored
// (Error non-empty). Structured fields are only populated for platforms
// with a known API response shape (GitHub, Reddit).
type AdapterResult struct {
	Platform string       `json:"platform"`
	Found    bool         `json:"found"`
	Error    AdapterError `json:"error,omitempty"`

	URL         string `json:"url,omitempty"`
	Note        string `json:"note,omitempty"`
	ProfileURL  string `json:"profileUrl,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Confidence  string `json:"confidence,omitempty"`

	Username     string `json:"username,omitempty"`
	Name         string `json:"name,omitempty"`
	Bio          string `json:"bio,omitempty"`
	Location     string `json:"location,omitempty"`
	Company      string `json:"company,omitempty"`
	Blog         string `json:"blog,omitempty"`
	Twitter      string `json:"twitter,omitempty"`
	PublicRepos  int    `json:"publicRepos,omitempty"`
	Followers    int    `json:"followers,omitempty"`
	Following    int    `json:"following,omitempty"`
	Karma        int    `json:"karma,omitempty"`
	LinkKarma    int    `json:"linkKarma,omitempty"`
	CommentKarma int    `json:"commentKarma,omitempty"`
	IsPremium    bool   `json:"isPremium,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	Email        string `json:"email,omitempty"`
	FoundEmail   string `json:"foundEmail,omitempty"`
}

// EmailIntelligence is derived locally from the address itself, before any
// network call.
type EmailIntelligence struct {
	LocalPart         string   `json:"localPart"`
	Domain            string   `json:"domain"`
	IsValid           bool     `json:"isValid"`
	PossibleUsernames []string `json:"possibleUsernames"`
	CommonVariations  []string `json:"commonVariations"`
}

// BreachRecord mirrors the fields consumed from the breach lookup provider
type BreachRecord struct {
	Name        string   `json:"Name"`
	Title       string   `json:"Title"`
	Domain      string   `json:"Domain"`
	BreachDate  string   `json:"BreachDate"`
	PwnCount    int64    `json:"PwnCount"`
	DataClasses []string `json:"DataClasses"`
	IsVerified  bool     `json:"IsVerified"`
}

// BreachFindings is the breach-lookup category. Error is set when the
// collaborator itself failed (including the credential-required case);
// Found=false with a nil Error means the address is clean.
type BreachFindings struct {
	Found    bool           `json:"found"`
	Count    int            `json:"count"`
	Breaches []BreachRecord `json:"breaches"`
	Message  string         `json:"message,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// DNSRecordSet is the per-type record breakdown for a domain
type DNSRecordSet struct {
	A     []string `json:"a"`
	MX    []string `json:"mx"`
	TXT   []string `json:"txt"`
	SPF   string   `json:"spf,omitempty"`
	DMARC string   `json:"dmarc,omitempty"`
}

// WhoisInfo carries the registration metadata consumed from the WHOIS provider
type WhoisInfo struct {
	Registrar   string `json:"registrar,omitempty"`
	CreatedDate string `json:"createdDate,omitempty"`
	ExpiresDate string `json:"expiresDate,omitempty"`
	Registrant  string `json:"registrant,omitempty"`
	Error       string `json:"error,omitempty"`
}

// DNSFindings is the dns category for email/domain queries
type DNSFindings struct {
	Domain  string       `json:"domain"`
	Records DNSRecordSet `json:"records"`
	Whois   *WhoisInfo   `json:"whois,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Certificate mirrors the fields consumed from the CT log search
type Certificate struct {
	IssuerName string `json:"issuer_name"`
	CommonName string `json:"common_name"`
	NameValue  string `json:"name_value"`
	NotBefore  string `json:"not_before"`
	NotAfter   string `json:"not_after"`
}

// CertificateFindings is the certificates category. Certificates is capped at
// the 50 most recent entries and Subdomains at 30 deduplicated names.
type CertificateFindings struct {
	Domain       string        `json:"domain"`
	Total        int           `json:"total"`
	Certificates []Certificate `json:"certificates"`
	Subdomains   []string      `json:"subdomains"`
	Error        string        `json:"error,omitempty"`
}

// WaybackFindings is the web-archive category
type WaybackFindings struct {
	URL            string `json:"url"`
	Total          int    `json:"total"`
	OldestSnapshot string `json:"oldestSnapshot,omitempty"`
	NewestSnapshot string `json:"newestSnapshot,omitempty"`
	Error          string `json:"error,omitempty"`
}

// DiscoveredSubdomain is one brute-forced subdomain with its resolved addresses
type DiscoveredSubdomain struct {
	Subdomain string   `json:"subdomain"`
	IPs       []string `json:"ips"`
}

// SubdomainFindings is the subdomains category
type SubdomainFindings struct {
	Total int                   `json:"total"`
	Found []DiscoveredSubdomain `json:"found"`
}

// GeoIPRecord carries the location fields consumed from the geolocation provider
type GeoIPRecord struct {
	IP      string  `json:"ip"`
	Country string  `json:"country,omitempty"`
	Region  string  `json:"region,omitempty"`
	City    string  `json:"city,omitempty"`
	ISP     string  `json:"isp,omitempty"`
	Org     string  `json:"org,omitempty"`
	AS      string  `json:"as,omitempty"`
	Lat     float64 `json:"lat,omitempty"`
	Lon     float64 `json:"lon,omitempty"`
	Hosting bool    `json:"hosting"`
	Proxy   bool    `json:"proxy"`
}

// Deliverability is the weighted mail-setup heuristic (MX 40, SPF 30, DMARC 30)
type Deliverability struct {
	Score    int    `json:"score"`
	Rating   string `json:"rating"`
	HasMX    bool   `json:"hasMx"`
	HasSPF   bool   `json:"hasSpf"`
	HasDMARC bool   `json:"hasDmarc"`
}

// GoogleDork is a generated search-URL suggestion; never executed
type GoogleDork struct {
	Query       string `json:"query"`
	URL         string `json:"url"`
	Risk        string `json:"risk"`
	Description string `json:"description"`
}

// SecurityHeaders is the raw header presence block from the site fetch
type SecurityHeaders struct {
	HTTPS         bool   `json:"https"`
	HSTS          bool   `json:"hsts"`
	CSP           bool   `json:"csp"`
	XFrameOptions string `json:"xframe"`
	XSSProtection string `json:"xss"`
}

// SecurityPosture is the header-based heuristic score for the query domain
type SecurityPosture struct {
	SecurityHeaders
	Score int    `json:"score"`
	Grade string `json:"grade"`
}

// TechStack is the substring-fingerprint category for the query domain
type TechStack struct {
	Server    string          `json:"server"`
	PoweredBy string          `json:"poweredBy"`
	Framework string          `json:"framework,omitempty"`
	CMS       string          `json:"cms,omitempty"`
	Analytics []string        `json:"analytics"`
	CDN       string          `json:"cdn"`
	Security  SecurityHeaders `json:"security"`
}

// GitHubSearchUser is the slice of a GitHub user-search hit we keep
type GitHubSearchUser struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// FootprintResult is one public-footprint check for an email query
type FootprintResult struct {
	Platform string            `json:"platform"`
	Found    bool              `json:"found"`
	URL      string            `json:"url"`
	Data     *GitHubSearchUser `json:"data,omitempty"`
}

// Connection is one edge in the social graph summary
type Connection struct {
	Platform  string `json:"platform"`
	URL       string `json:"url,omitempty"`
	HasAvatar bool   `json:"hasAvatar"`
	HasBio    bool   `json:"hasBio"`
}

// SocialGraph summarises cross-platform presence for a username
type SocialGraph struct {
	Username          string       `json:"username"`
	Connections       []Connection `json:"connections"`
	CommonThemes      []string     `json:"commonThemes"`
	EstimatedActivity string       `json:"estimatedActivity"`
}

// DarkWebIndicators is the exposure-risk category
type DarkWebIndicators struct {
	BreachExposure  string   `json:"breachExposure"`
	PasteExposure   string   `json:"pasteExposure"`
	RiskLevel       string   `json:"riskLevel"`
	Recommendations []string `json:"recommendations"`
}

// PhoneIntelligence is the phone category
type PhoneIntelligence struct {
	Original    string          `json:"original"`
	Cleaned     string          `json:"cleaned"`
	IsValid     bool            `json:"isValid"`
	Length      int             `json:"length"`
	Country     string          `json:"country,omitempty"`
	CountryCode string          `json:"countryCode,omitempty"`
	Formatted   string          `json:"formatted,omitempty"`
	SpamReports []AdapterResult `json:"spamReports"`
}

// Summary is the headline block rendered at the top of the dashboard
type Summary struct {
	TotalPlatforms    int    `json:"totalPlatforms"`
	FoundPlatforms    int    `json:"foundPlatforms"`
	DiscoveredEmails  int    `json:"discoveredEmails"`
	PasteSitesChecked int    `json:"pasteSitesChecked"`
	Richness          string `json:"richness"`
	SocialActivity    string `json:"socialActivity"`
	RiskLevel         string `json:"riskLevel"`
}

// Findings is the merged, category-keyed result of a search. Categories are
// disjoint: each is written by exactly one collector and never overwritten.
// Pointer and slice fields stay absent from the JSON for query types that do
// not produce them.
type Findings struct {
	// Username categories
	SocialMedia      []AdapterResult    `json:"socialMedia,omitempty"`
	PasteSites       []AdapterResult    `json:"pasteSites,omitempty"`
	DiscoveredEmails []string           `json:"discoveredEmails,omitempty"`
	PotentialEmails  []string           `json:"potentialEmails,omitempty"`
	PlatformsFound   *int               `json:"platformsFound,omitempty"`
	PlatformsChecked *int               `json:"platformsChecked,omitempty"`
	SocialGraph      *SocialGraph       `json:"socialGraph,omitempty"`
	DarkWeb          *DarkWebIndicators `json:"darkWebIndicators,omitempty"`
	DataRichness     *int               `json:"dataRichnessScore,omitempty"`
	Summary          *Summary           `json:"summary,omitempty"`

	// Email categories
	EmailIntelligence *EmailIntelligence   `json:"emailIntelligence,omitempty"`
	Breaches          *BreachFindings      `json:"breaches,omitempty"`
	PublicFootprint   []FootprintResult    `json:"publicFootprint,omitempty"`
	DNS               *DNSFindings         `json:"dns,omitempty"`
	Certificates      *CertificateFindings `json:"certificates,omitempty"`
	Wayback           *WaybackFindings     `json:"wayback,omitempty"`
	Subdomains        *SubdomainFindings   `json:"subdomains,omitempty"`
	IPGeolocation     []GeoIPRecord        `json:"ipGeolocation,omitempty"`
	Deliverability    *Deliverability      `json:"deliverability,omitempty"`
	GoogleDorks       []GoogleDork         `json:"googleDorks,omitempty"`
	SecurityPosture   *SecurityPosture     `json:"securityPosture,omitempty"`
	TechStack         *TechStack           `json:"techStack,omitempty"`

	// Phone category
	Phone *PhoneIntelligence `json:"phone,omitempty"`
}

package ratelimit

// DefaultAPIs returns the built-in quota table in display order.
// Disabled entries are integrations that require paid credentials; they stay
// in the table so the dashboard can show them and the limiter can name them
// when refusing a call.
func DefaultAPIs() []APIConfig {
	return []APIConfig{
		{Key: "osint-search", Name: "OSINT Search", Enabled: true, DailyLimit: 100, Description: "Main OSINT search function"},
		{Key: "breach-check", Name: "Breach Check", Enabled: true, DailyLimit: 25, Description: "Check for data breaches"},
		{Key: "dns-whois-lookup", Name: "DNS/WHOIS Lookup", Enabled: true, DailyLimit: 50, Description: "DNS and WHOIS information"},
		{Key: "wayback-lookup", Name: "Wayback Machine", Enabled: true, DailyLimit: 30, Description: "Historical website data"},
		{Key: "cert-transparency", Name: "Certificate Transparency", Enabled: true, DailyLimit: 50, Description: "SSL certificate logs"},
		{Key: "hunter-io", Name: "Hunter.io", Enabled: false, DailyLimit: 50, Description: "Email finder and verification"},
		{Key: "shodan", Name: "Shodan", Enabled: false, DailyLimit: 100, Description: "Internet-connected device search"},
		{Key: "pipl", Name: "Pipl", Enabled: false, DailyLimit: 20, Description: "Deep people search"},
		{Key: "social-searcher", Name: "Social-Searcher", Enabled: false, DailyLimit: 100, Description: "Social media monitoring"},
	}
}

// MergeOverrides applies per-key overrides from configuration on top of the
// default table, preserving default order. Unknown override keys are ignored.
func MergeOverrides(overrides map[string]APIConfig) []APIConfig {
	apis := DefaultAPIs()
	for i, api := range apis {
		if o, ok := overrides[api.Key]; ok {
			o.Key = api.Key
			if o.Name == "" {
				o.Name = api.Name
			}
			if o.Description == "" {
				o.Description = api.Description
			}
			apis[i] = o
		}
	}
	return apis
}

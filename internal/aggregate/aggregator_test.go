package aggregate

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hakim/osintdash/internal/collect"
	"github.com/hakim/osintdash/internal/models"
	"github.com/hakim/osintdash/internal/platforms"
	"github.com/hakim/osintdash/internal/ratelimit"
	"golang.org/x/time/rate"
)

// roundTripFunc answers absolute URLs in tests without touching the network.
type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func stubResponse(req *http.Request, status int, contentType, body string) *http.Response {
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &http.Response{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

// memUsageStore is an in-memory ratelimit.UsageStore for gating tests.
type memUsageStore struct {
	records map[string]ratelimit.UsageRecord
}

func newMemUsageStore() *memUsageStore {
	return &memUsageStore{records: make(map[string]ratelimit.UsageRecord)}
}

func (m *memUsageStore) GetUsage(k string) (ratelimit.UsageRecord, bool, error) {
	rec, ok := m.records[k]
	return rec, ok, nil
}
func (m *memUsageStore) PutUsage(k string, rec ratelimit.UsageRecord) error {
	m.records[k] = rec
	return nil
}
func (m *memUsageStore) DeleteUsage(k string) error {
	delete(m.records, k)
	return nil
}
func (m *memUsageStore) AllUsage() (map[string]ratelimit.UsageRecord, error) {
	return m.records, nil
}
func (m *memUsageStore) ClearUsage() error {
	m.records = make(map[string]ratelimit.UsageRecord)
	return nil
}

func TestSearch_Validation(t *testing.T) {
	a := New(Config{}, nil, nil)

	if _, err := a.Search(context.Background(), "", models.QueryUsername); !errors.Is(err, ErrMissingQuery) {
		t.Errorf("empty query: err = %v, want ErrMissingQuery", err)
	}
	if _, err := a.Search(context.Background(), "   ", models.QueryUsername); !errors.Is(err, ErrMissingQuery) {
		t.Errorf("blank query: err = %v, want ErrMissingQuery", err)
	}
	if _, err := a.Search(context.Background(), "someone", ""); !errors.Is(err, ErrMissingQuery) {
		t.Errorf("missing type: err = %v, want ErrMissingQuery", err)
	}
	if _, err := a.Search(context.Background(), "someone", "domain"); err == nil {
		t.Error("unsupported type: err = nil, want error")
	}
}

func TestSearchUsername_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/github/"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"login": "octocat",
				"bio": "developer at example, reach me at octo@example.com",
				"location": "San Francisco",
				"followers": 5000,
				"avatar_url": "https://avatars.example/octocat.png",
				"html_url": "https://github.com/octocat",
				"email": "octo@example.com"
			}`))
		case strings.HasPrefix(r.URL.Path, "/site/"):
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<html><div>42 followers</div></html>`))
		case strings.HasPrefix(r.URL.Path, "/missing/"):
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<html><title>Page not found</title></html>`))
		case strings.HasPrefix(r.URL.Path, "/paste/"):
			w.Write([]byte(`<html>This user has no pastes</html>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := New(Config{}, nil, nil)
	a.Checker = collect.NewProfileChecker(srv.Client())
	a.UsernameAdapters = []platforms.Adapter{
		{Name: "GitHub", URLTemplate: srv.URL + "/github/%s", Kind: models.KindAPI},
		{Name: "SiteX", URLTemplate: srv.URL + "/site/%s", Kind: models.KindWeb},
		{Name: "MissingSite", URLTemplate: srv.URL + "/missing/%s", Kind: models.KindWeb},
	}
	a.PasteAdapters = []platforms.Adapter{
		{Name: "Pastebin", URLTemplate: srv.URL + "/paste/%s", Kind: models.KindPaste},
	}

	result, err := a.Search(context.Background(), "octocat", models.QueryUsername)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	f := &result.Findings

	// Results land in catalog order, every adapter represented exactly once.
	if len(f.SocialMedia) != 3 {
		t.Fatalf("len(SocialMedia) = %d, want 3", len(f.SocialMedia))
	}
	for i, wantName := range []string{"GitHub", "SiteX", "MissingSite"} {
		if f.SocialMedia[i].Platform != wantName {
			t.Errorf("SocialMedia[%d] = %s, want %s", i, f.SocialMedia[i].Platform, wantName)
		}
	}
	if !f.SocialMedia[0].Found || !f.SocialMedia[1].Found || f.SocialMedia[2].Found {
		t.Errorf("found flags = %t/%t/%t, want true/true/false",
			f.SocialMedia[0].Found, f.SocialMedia[1].Found, f.SocialMedia[2].Found)
	}
	if f.SocialMedia[0].Followers != 5000 {
		t.Errorf("GitHub followers = %d, want 5000", f.SocialMedia[0].Followers)
	}

	if f.PlatformsFound == nil || *f.PlatformsFound != 2 {
		t.Fatalf("PlatformsFound = %v, want 2", f.PlatformsFound)
	}
	if f.PlatformsChecked == nil || *f.PlatformsChecked != 3 {
		t.Errorf("PlatformsChecked = %v, want 3", f.PlatformsChecked)
	}

	if len(f.DiscoveredEmails) != 1 || f.DiscoveredEmails[0] != "octo@example.com" {
		t.Errorf("DiscoveredEmails = %v, want the profile email once", f.DiscoveredEmails)
	}
	if len(f.PotentialEmails) != 5 || f.PotentialEmails[0] != "octocat@gmail.com" {
		t.Errorf("PotentialEmails = %v, want 5 provider suggestions", f.PotentialEmails)
	}

	if f.SocialGraph == nil {
		t.Fatal("SocialGraph missing")
	}
	if len(f.SocialGraph.Connections) != 2 {
		t.Errorf("connections = %d, want 2", len(f.SocialGraph.Connections))
	}
	if f.SocialGraph.EstimatedActivity != "Low" {
		t.Errorf("EstimatedActivity = %q, want Low for 2 platforms", f.SocialGraph.EstimatedActivity)
	}
	if len(f.SocialGraph.CommonThemes) != 1 || f.SocialGraph.CommonThemes[0] != "developer" {
		t.Errorf("CommonThemes = %v, want [developer]", f.SocialGraph.CommonThemes)
	}

	// 2/3 coverage (20) + emails (20) + avatar (15) + bio (20) + location (15)
	if f.DataRichness == nil || *f.DataRichness != 90 {
		t.Errorf("DataRichness = %v, want 90", f.DataRichness)
	}
	if f.Summary == nil || f.Summary.Richness != "High" {
		t.Errorf("Summary = %+v, want richness High", f.Summary)
	}

	// Two risk factors (discovered emails, leaked profile email) = Medium,
	// which contributes 15 to the overall score. No breaches, no pastes.
	if f.DarkWeb == nil || f.DarkWeb.RiskLevel != "Medium" {
		t.Fatalf("DarkWeb = %+v, want Medium risk", f.DarkWeb)
	}
	if result.OverallRiskScore != 15 {
		t.Errorf("OverallRiskScore = %d, want 15", result.OverallRiskScore)
	}
}

func TestSearchEmail_EndToEnd(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
		switch req.URL.Host {
		case "hibp.test":
			return stubResponse(req, 200, "application/json", `[
				{"Name": "Adobe", "Title": "Adobe", "BreachDate": "2013-10-04",
				 "PwnCount": 152445165, "DataClasses": ["Passwords"], "IsVerified": true},
				{"Name": "LinkedIn", "Title": "LinkedIn", "BreachDate": "2012-05-05",
				 "PwnCount": 164611595, "DataClasses": ["Email addresses"], "IsVerified": true}
			]`)

		case "doh.test":
			name := req.URL.Query().Get("name")
			recordType := req.URL.Query().Get("type")
			switch {
			case name == "example.com" && recordType == "A":
				return stubResponse(req, 200, "application/dns-json",
					`{"Answer": [{"name": "example.com", "type": 1, "TTL": 300, "data": "93.184.216.34"}]}`)
			case name == "www.example.com" && recordType == "A":
				return stubResponse(req, 200, "application/dns-json",
					`{"Answer": [{"name": "www.example.com", "type": 1, "TTL": 300, "data": "93.184.216.35"}]}`)
			case name == "example.com" && recordType == "MX":
				return stubResponse(req, 200, "application/dns-json",
					`{"Answer": [{"name": "example.com", "type": 15, "TTL": 300, "data": "10 mail.example.com"}]}`)
			case name == "example.com" && recordType == "TXT":
				return stubResponse(req, 200, "application/dns-json",
					`{"Answer": [{"name": "example.com", "type": 16, "TTL": 300, "data": "\"v=spf1 include:_spf.example.com ~all\""}]}`)
			case name == "_dmarc.example.com" && recordType == "TXT":
				return stubResponse(req, 200, "application/dns-json",
					`{"Answer": [{"name": "_dmarc.example.com", "type": 16, "TTL": 300, "data": "\"v=DMARC1; p=none\""}]}`)
			}
			return stubResponse(req, 200, "application/dns-json", `{"Answer": []}`)

		case "whois.test":
			return stubResponse(req, 200, "application/json", `{
				"WhoisRecord": {
					"registrarName": "Example Registrar",
					"createdDate": "1995-08-14",
					"expiresDate": "2030-08-13",
					"registrant": {"organization": "Example Org"}
				}
			}`)

		case "crt.test":
			return stubResponse(req, 200, "application/json", `[
				{"issuer_name": "C=US, O=DigiCert", "common_name": "example.com",
				 "name_value": "www.example.com\nexample.com",
				 "not_before": "2025-01-01", "not_after": "2026-01-01"}
			]`)

		case "wayback.test":
			return stubResponse(req, 200, "application/json",
				`[["urlkey","timestamp"],["com,example)/","20010101000000"],["com,example)/","20200101000000"]]`)

		case "geo.test":
			return stubResponse(req, 200, "application/json", `{
				"status": "success", "country": "United States", "regionName": "CA",
				"city": "Los Angeles", "isp": "Example ISP", "org": "Example",
				"as": "AS15133", "lat": 34.0, "lon": -118.2, "hosting": true, "proxy": false
			}`)

		case "gravatar.com":
			return stubResponse(req, 200, "text/html", `<html>profile page</html>`)

		case "api.github.com":
			return stubResponse(req, 200, "application/json", `{"total_count": 0, "items": []}`)

		case "example.com":
			resp := stubResponse(req, 200, "text/html",
				`<html><link href="/wp-content/style.css"></html>`)
			resp.Header.Set("Server", "nginx")
			resp.Header.Set("Strict-Transport-Security", "max-age=31536000")
			return resp
		}
		return stubResponse(req, 404, "", "")
	})}

	a := New(Config{GeoIPInterval: time.Millisecond}, nil, nil)
	a.Checker = collect.NewProfileChecker(client)
	a.Breach = &collect.BreachClient{HTTPClient: client, BaseURL: "https://hibp.test", APIKey: "k"}
	a.DNS = &collect.DNSClient{HTTPClient: client, BaseURL: "https://doh.test/dns-query"}
	a.Whois = &collect.WhoisClient{HTTPClient: client, BaseURL: "https://whois.test", APIKey: "at_free"}
	a.Certs = &collect.CertClient{HTTPClient: client, BaseURL: "https://crt.test"}
	a.Wayback = &collect.WaybackClient{HTTPClient: client, BaseURL: "https://wayback.test"}
	a.GeoIP = &collect.GeoIPClient{HTTPClient: client, BaseURL: "http://geo.test/json", Limiter: rate.NewLimiter(rate.Every(time.Millisecond), 1)}
	a.Site = &collect.SiteClient{HTTPClient: client}

	result, err := a.Search(context.Background(), "john.doe@example.com", models.QueryEmail)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	f := &result.Findings

	intel := f.EmailIntelligence
	if intel == nil {
		t.Fatal("EmailIntelligence missing")
	}
	if intel.LocalPart != "john.doe" || intel.Domain != "example.com" || !intel.IsValid {
		t.Errorf("intelligence = %+v, want parsed valid address", intel)
	}
	wantUsernames := []string{"john.doe", "johndoe", "john"}
	if len(intel.PossibleUsernames) != len(wantUsernames) {
		t.Fatalf("PossibleUsernames = %v, want %v", intel.PossibleUsernames, wantUsernames)
	}
	for i, want := range wantUsernames {
		if intel.PossibleUsernames[i] != want {
			t.Errorf("PossibleUsernames[%d] = %q, want %q", i, intel.PossibleUsernames[i], want)
		}
	}
	if len(intel.CommonVariations) != 4 {
		t.Errorf("CommonVariations = %v, want 4 providers", intel.CommonVariations)
	}

	if f.Breaches == nil || !f.Breaches.Found || f.Breaches.Count != 2 {
		t.Fatalf("Breaches = %+v, want 2 breaches", f.Breaches)
	}

	if len(f.PublicFootprint) != 2 {
		t.Fatalf("PublicFootprint = %d entries, want 2", len(f.PublicFootprint))
	}
	if !f.PublicFootprint[0].Found {
		t.Error("Gravatar footprint: Found = false, want true on 200")
	}
	if !f.PublicFootprint[1].Found || f.PublicFootprint[1].Data != nil {
		t.Errorf("GitHub search footprint = found=%t data=%+v, want found on 200 with no account data",
			f.PublicFootprint[1].Found, f.PublicFootprint[1].Data)
	}

	if f.DNS == nil || f.DNS.Error != "" {
		t.Fatalf("DNS = %+v, want clean findings", f.DNS)
	}
	if len(f.DNS.Records.A) != 1 || f.DNS.Records.SPF == "" || f.DNS.Records.DMARC == "" {
		t.Errorf("Records = %+v, want A/SPF/DMARC populated", f.DNS.Records)
	}
	if f.DNS.Whois == nil || f.DNS.Whois.Registrar != "Example Registrar" {
		t.Errorf("Whois = %+v, want registrar filled", f.DNS.Whois)
	}

	if f.Deliverability == nil || f.Deliverability.Score != 100 || f.Deliverability.Rating != "Excellent" {
		t.Errorf("Deliverability = %+v, want 100/Excellent", f.Deliverability)
	}

	if f.Certificates == nil || f.Certificates.Total != 1 || len(f.Certificates.Subdomains) != 2 {
		t.Errorf("Certificates = %+v, want 1 cert with 2 SANs", f.Certificates)
	}

	if f.Wayback == nil || f.Wayback.Total != 2 ||
		f.Wayback.OldestSnapshot != "20010101000000" || f.Wayback.NewestSnapshot != "20200101000000" {
		t.Errorf("Wayback = %+v, want 2 snapshots with oldest/newest", f.Wayback)
	}

	if f.Subdomains == nil || f.Subdomains.Total != 1 || f.Subdomains.Found[0].Subdomain != "www.example.com" {
		t.Errorf("Subdomains = %+v, want www.example.com only", f.Subdomains)
	}

	if f.TechStack == nil || f.TechStack.CMS != "WordPress" || f.TechStack.Server != "nginx" {
		t.Errorf("TechStack = %+v, want WordPress on nginx", f.TechStack)
	}

	// HTTPS (30) + HSTS (25) = 55, grade C.
	if f.SecurityPosture == nil || f.SecurityPosture.Score != 55 || f.SecurityPosture.Grade != "C" {
		t.Errorf("SecurityPosture = %+v, want 55/C", f.SecurityPosture)
	}

	if len(f.GoogleDorks) != 5 {
		t.Errorf("GoogleDorks = %d entries, want 5", len(f.GoogleDorks))
	}

	// Apex + www IPs, deduplicated.
	if len(f.IPGeolocation) != 2 || f.IPGeolocation[0].Country != "United States" {
		t.Errorf("IPGeolocation = %+v, want 2 located IPs", f.IPGeolocation)
	}

	// With no limiter every gated API is recorded as used.
	wantAPIs := []string{"breach-check", "dns-whois-lookup", "cert-transparency", "wayback-lookup"}
	if len(result.APIsUsed) != len(wantAPIs) {
		t.Fatalf("APIsUsed = %v, want %v", result.APIsUsed, wantAPIs)
	}
	for i, want := range wantAPIs {
		if result.APIsUsed[i] != want {
			t.Errorf("APIsUsed[%d] = %s, want %s", i, result.APIsUsed[i], want)
		}
	}

	// 2 breaches at 10 points each; nothing else contributes.
	if result.OverallRiskScore != 20 {
		t.Errorf("OverallRiskScore = %d, want 20", result.OverallRiskScore)
	}
}

func TestSearchEmail_QuotaDenialRecordedOnCategory(t *testing.T) {
	apis := []ratelimit.APIConfig{
		{Key: "breach-check", Name: "Breach Check", Enabled: true, DailyLimit: 0},
		{Key: "dns-whois-lookup", Name: "DNS/WHOIS Lookup", Enabled: true, DailyLimit: 50},
		{Key: "cert-transparency", Name: "Certificate Transparency", Enabled: true, DailyLimit: 50},
		{Key: "wayback-lookup", Name: "Wayback Machine", Enabled: true, DailyLimit: 30},
	}
	limiter := ratelimit.New(apis, newMemUsageStore())

	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
		return stubResponse(req, 404, "", "")
	})}

	a := New(Config{GeoIPInterval: time.Millisecond}, limiter, nil)
	a.Checker = collect.NewProfileChecker(client)
	a.DNS = &collect.DNSClient{HTTPClient: client, BaseURL: "https://doh.test/dns-query"}
	a.Whois = &collect.WhoisClient{HTTPClient: client, BaseURL: "https://whois.test", APIKey: "at_free"}
	a.Certs = &collect.CertClient{HTTPClient: client, BaseURL: "https://crt.test"}
	a.Wayback = &collect.WaybackClient{HTTPClient: client, BaseURL: "https://wayback.test"}
	a.GeoIP = &collect.GeoIPClient{HTTPClient: client, BaseURL: "http://geo.test/json", Limiter: rate.NewLimiter(rate.Every(time.Millisecond), 1)}
	a.Site = &collect.SiteClient{HTTPClient: client}

	result, err := a.Search(context.Background(), "user@example.com", models.QueryEmail)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	breaches := result.Findings.Breaches
	if breaches == nil {
		t.Fatal("Breaches missing")
	}
	if !strings.Contains(breaches.Error, "Daily limit reached for Breach Check (0/0)") {
		t.Errorf("Breaches.Error = %q, want the denial reason", breaches.Error)
	}
	for _, api := range result.APIsUsed {
		if api == "breach-check" {
			t.Error("breach-check in APIsUsed despite denial")
		}
	}
}

func TestSearchEmail_NoDomain(t *testing.T) {
	limiter := ratelimit.New(ratelimit.DefaultAPIs(), newMemUsageStore())

	var mu sync.Mutex
	hosts := make(map[string]int)
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
		mu.Lock()
		hosts[req.URL.Host]++
		mu.Unlock()
		switch req.URL.Host {
		case "hibp.test":
			return stubResponse(req, 404, "", "")
		case "gravatar.com":
			return stubResponse(req, 200, "text/html", `<html>profile page</html>`)
		case "api.github.com":
			return stubResponse(req, 200, "application/json", `{"total_count": 0, "items": []}`)
		}
		return stubResponse(req, 404, "", "")
	})}

	a := New(Config{GeoIPInterval: time.Millisecond}, limiter, nil)
	a.Checker = collect.NewProfileChecker(client)
	a.Breach = &collect.BreachClient{HTTPClient: client, BaseURL: "https://hibp.test", APIKey: "k"}
	a.DNS = &collect.DNSClient{HTTPClient: client, BaseURL: "https://doh.test/dns-query"}
	a.Whois = &collect.WhoisClient{HTTPClient: client, BaseURL: "https://whois.test", APIKey: "at_free"}
	a.Certs = &collect.CertClient{HTTPClient: client, BaseURL: "https://crt.test"}
	a.Wayback = &collect.WaybackClient{HTTPClient: client, BaseURL: "https://wayback.test"}
	a.GeoIP = &collect.GeoIPClient{HTTPClient: client, BaseURL: "http://geo.test/json", Limiter: rate.NewLimiter(rate.Every(time.Millisecond), 1)}
	a.Site = &collect.SiteClient{HTTPClient: client}

	result, err := a.Search(context.Background(), "plainuser", models.QueryEmail)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	f := &result.Findings

	// Address analysis and the non-domain collaborators still run.
	if f.EmailIntelligence == nil || f.EmailIntelligence.Domain != "" || f.EmailIntelligence.IsValid {
		t.Errorf("EmailIntelligence = %+v, want domainless invalid address", f.EmailIntelligence)
	}
	if f.Breaches == nil || f.Breaches.Found {
		t.Errorf("Breaches = %+v, want a clean check", f.Breaches)
	}
	if len(f.PublicFootprint) != 2 {
		t.Errorf("PublicFootprint = %d entries, want 2", len(f.PublicFootprint))
	}

	// Without a domain no lookup runs and no domain category appears.
	if f.DNS != nil || f.Certificates != nil || f.Wayback != nil ||
		f.Subdomains != nil || f.TechStack != nil || f.IPGeolocation != nil {
		t.Errorf("domain categories populated for domainless query: dns=%v certs=%v wayback=%v subs=%v tech=%v geo=%v",
			f.DNS, f.Certificates, f.Wayback, f.Subdomains, f.TechStack, f.IPGeolocation)
	}

	// Only the breach quota is debited.
	if len(result.APIsUsed) != 1 || result.APIsUsed[0] != "breach-check" {
		t.Errorf("APIsUsed = %v, want [breach-check]", result.APIsUsed)
	}
	for _, api := range []string{"dns-whois-lookup", "cert-transparency", "wayback-lookup"} {
		if snap := limiter.UsageSnapshot(api); snap.Current != 0 {
			t.Errorf("%s usage = %d, want 0", api, snap.Current)
		}
	}

	// No request leaves for the domain collaborators or the wordlist.
	for host := range hosts {
		switch host {
		case "hibp.test", "gravatar.com", "api.github.com":
		default:
			t.Errorf("unexpected request to %s", host)
		}
	}

	// The domain dork is omitted; the address dorks remain.
	if len(f.GoogleDorks) != 4 {
		t.Errorf("GoogleDorks = %d entries, want 4", len(f.GoogleDorks))
	}
	for _, dork := range f.GoogleDorks {
		if strings.Contains(dork.Query, "site:") && !strings.Contains(dork.Query, "pastebin") {
			t.Errorf("domain dork generated without a domain: %q", dork.Query)
		}
	}
}

func TestSearchPhone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/spam/") {
			w.Write([]byte(`<html>spam caller reported 12 times</html>`))
			return
		}
		w.Write([]byte(`<html>number not found in reports</html>`))
	}))
	defer srv.Close()

	a := New(Config{}, nil, nil)
	a.Checker = collect.NewProfileChecker(srv.Client())
	a.SpamAdapters = []platforms.Adapter{
		{Name: "WhoCalledMe", URLTemplate: srv.URL + "/spam/%s", Kind: models.KindWeb},
		{Name: "CallerId", URLTemplate: srv.URL + "/clean/%s", Kind: models.KindWeb},
	}

	result, err := a.Search(context.Background(), "+1 (555) 123-4567", models.QueryPhone)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	phone := result.Findings.Phone
	if phone == nil {
		t.Fatal("Phone findings missing")
	}

	if phone.Cleaned != "15551234567" {
		t.Errorf("Cleaned = %q, want 15551234567", phone.Cleaned)
	}
	if !phone.IsValid {
		t.Error("IsValid = false, want true")
	}
	if phone.Country != "US/Canada" || phone.CountryCode != "+1" {
		t.Errorf("Country = %q (%q), want US/Canada (+1)", phone.Country, phone.CountryCode)
	}
	if phone.Formatted != "+1 (555) 123-4567" {
		t.Errorf("Formatted = %q, want +1 (555) 123-4567", phone.Formatted)
	}

	if len(phone.SpamReports) != 2 {
		t.Fatalf("SpamReports = %d, want 2", len(phone.SpamReports))
	}
	if !phone.SpamReports[0].Found {
		t.Error("spam site: Found = false, want true")
	}
	if phone.SpamReports[1].Found {
		t.Error("clean site: Found = true, want false")
	}
}

func TestCountryFromPrefix(t *testing.T) {
	tests := []struct {
		cleaned   string
		country   string
		code      string
		formatted string
	}{
		{"15551234567", "US/Canada", "+1", "+1 (555) 123-4567"},
		{"447911123456", "UK", "+44", ""},
		{"919876543210", "India", "+91", ""},
		{"8613800000000", "China", "+86", ""},
		{"61412345678", "Australia", "+61", ""},
		// Ten digits match no dialing code; nothing is assumed.
		{"5551234567", "", "", ""},
		{"3312345678901", "", "", ""},
	}
	for _, tt := range tests {
		country, code := countryFromPrefix(tt.cleaned)
		if country != tt.country || code != tt.code {
			t.Errorf("countryFromPrefix(%s) = %q/%q, want %q/%q",
				tt.cleaned, country, code, tt.country, tt.code)
		}
		if got := formatNumber(tt.cleaned); got != tt.formatted {
			t.Errorf("formatNumber(%s) = %q, want %q", tt.cleaned, got, tt.formatted)
		}
	}
}

func TestSearchPhone_InvalidNumber(t *testing.T) {
	a := New(Config{}, nil, nil)
	a.SpamAdapters = nil

	result, err := a.Search(context.Background(), "12345", models.QueryPhone)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	phone := result.Findings.Phone
	if phone.IsValid {
		t.Error("IsValid = true for 5 digits, want false")
	}
	if phone.Country != "" || phone.Formatted != "" {
		t.Errorf("Country/Formatted = %q/%q, want empty for invalid number", phone.Country, phone.Formatted)
	}
}

package branchio

// Special keys of the Data payload, interpreted by Branch.
// See https://dev.branch.io/references/http_api/

// Open Graph tags used when the link is shared.
const (
	DataOGTitle       = "$og_title"
	DataOGDescription = "$og_description"
	DataOGImageURL    = "$og_image_url"
	DataOGVideo       = "$og_video"
	DataOGURL         = "$og_url"

	// DataOGRedirect bypasses Branch's own OG tags.
	DataOGRedirect = "$og_redirect"
)

// Per-platform redirection.
const (
	DataDesktopURL      = "$desktop_url"
	DataAndroidURL      = "$android_url"
	DataIOSURL          = "$ios_url"
	DataIPadURL         = "$ipad_url"
	DataFireURL         = "$fire_url"
	DataBlackberryURL   = "$blackberry_url"
	DataWindowsPhoneURL = "$windows_phone_url"

	// DataAfterClickURL is iOS only: where to go once the user is in the app.
	DataAfterClickURL = "$after_click_url"

	DataDeeplinkPath   = "$deeplink_path"
	DataAlwaysDeeplink = "$always_deeplink"
)

// LinkType selects the behavior of a created link.
type LinkType int

const (
	TypeURLStandard  LinkType = 0
	TypeURLOneTime   LinkType = 1
	TypeURLMarketing LinkType = 2
)

// Keys of a decoded API response.
const (
	ReturnURL   = "url"
	ReturnError = "error"
)

// DefaultBaseURL is the Branch API host.
const DefaultBaseURL = "https://api.branch.io"

const (
	pathURL     = "/v1/url"
	pathURLBulk = "/v1/url/bulk/"
)

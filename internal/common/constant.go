package common

// APIKeyHeaderName is the HTTP header carrying the catalog API key on
// outbound requests.
const APIKeyHeaderName = "x-api-key"

// SourceArchiveName is the archive name recorded on bookmarks created from
// catalog search results.
const SourceArchiveName = "NARA"

// SourceInstitution is the maintenance agency of every canonical record.
const (
	SourceInstitution     = "National Archives and Records Administration"
	SourceInstitutionCode = "US-DNA"
)

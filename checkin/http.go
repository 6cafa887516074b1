package checkin

import "time"

// HTTPRequestTimeout is the default timeout for all HTTP requests to the Airtable API.
const HTTPRequestTimeout = 60 * time.Second

// AirtableEndpoint is used when settings do not override the endpoint.
const AirtableEndpoint = "https://api.airtable.com"

package fetch

// NewFetcherWithClient exposes the test constructor.
var NewFetcherWithClient = newFetcherWithClient

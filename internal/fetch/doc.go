package fetch

// Package fetch implements the cached downloader: a URL is fetched into a
// local directory under its last path segment unless that file is already
// present. Transfers go through a retrying HTTP client and are staged in a
// temporary file so an interrupted fetch is never mistaken for a cached one.
// Service also runs fetches as tasks with a parallelism limit and pushes
// progress to the UI through an update callback.

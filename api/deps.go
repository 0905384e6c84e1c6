package api

import (
	"github.com/ramonsanvesti/vesti-founder-sub001/pipeline"
	"github.com/ramonsanvesti/vesti-founder-sub001/storage"
)

// Package-level collaborators, wired once from main before the server starts.
var (
	videos       *storage.VideoStore
	candidates   *storage.CandidateStore
	items        *storage.ItemStore
	blob         *storage.BlobGateway
	orchestrator *pipeline.Orchestrator
	query        *pipeline.QueryService
)

// Dependencies bundles everything the handlers need.
type Dependencies struct {
	Videos       *storage.VideoStore
	Candidates   *storage.CandidateStore
	Items        *storage.ItemStore
	Blob         *storage.BlobGateway
	Orchestrator *pipeline.Orchestrator
	Query        *pipeline.QueryService
}

// Init wires the handler collaborators.
func Init(deps Dependencies) {
	videos = deps.Videos
	candidates = deps.Candidates
	items = deps.Items
	blob = deps.Blob
	orchestrator = deps.Orchestrator
	query = deps.Query
}

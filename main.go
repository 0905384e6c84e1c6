package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/ramonsanvesti/vesti-founder-sub001/api"
	"github.com/ramonsanvesti/vesti-founder-sub001/config"
	"github.com/ramonsanvesti/vesti-founder-sub001/pipeline"
	"github.com/ramonsanvesti/vesti-founder-sub001/queue"
	"github.com/ramonsanvesti/vesti-founder-sub001/storage"
	"github.com/ramonsanvesti/vesti-founder-sub001/utils"
)

func main() {
	config.LoadConfig()

	// Initialize MongoDB
	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	videos := storage.NewVideoStore()
	candidates := storage.NewCandidateStore()
	items := storage.NewItemStore()
	blob := storage.NewBlobGateway(storage.Bucket())

	var publisher pipeline.Publisher
	if config.QStashURL != "" {
		publisher = queue.New(config.QStashURL, config.QStashToken)
		log.Println("Queue publish enabled")
	} else {
		log.Println("No queue configured, using direct worker dispatch")
	}

	orchestrator := &pipeline.Orchestrator{
		Videos:    videos,
		Queue:     publisher,
		WorkerURL: config.WorkerProcessURL,
		Logf:      log.Printf,
	}
	query := &pipeline.QueryService{
		Videos:     videos,
		Candidates: candidates,
		Signer:     blob,
	}

	api.Init(api.Dependencies{
		Videos:       videos,
		Candidates:   candidates,
		Items:        items,
		Blob:         blob,
		Orchestrator: orchestrator,
		Query:        query,
	})

	// CORS Middleware
	corsMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return corsMiddleware(api.TenantMiddleware(h))
	}

	http.HandleFunc("/wardrobe/videos", wrap(api.CreateVideoHandler))
	http.HandleFunc("/wardrobe/videos/process", wrap(api.ProcessVideoHandler))
	http.HandleFunc("/wardrobe/videos/candidates", wrap(api.ListCandidatesHandler))
	http.HandleFunc("/wardrobe/candidates/upload", wrap(api.UploadCandidateHandler))
	http.HandleFunc("/wardrobe/items/confirm", wrap(api.ConfirmItemHandler))

	port := config.Port
	fmt.Printf("Server starting on port %s...\n", port)
	if err := http.ListenAndServe(":"+port, utils.LatencyMiddleware(http.DefaultServeMux)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

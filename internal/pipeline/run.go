// Package pipeline provides the high-level orchestration for the job
// market analysis process.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobminer/internal/cluster"
	"github.com/jonathan/jobminer/internal/db"
	"github.com/jonathan/jobminer/internal/dedup"
	"github.com/jonathan/jobminer/internal/embedding"
	"github.com/jonathan/jobminer/internal/ingestion"
	"github.com/jonathan/jobminer/internal/keywords"
	"github.com/jonathan/jobminer/internal/normalize"
	"github.com/jonathan/jobminer/internal/observability"
	"github.com/jonathan/jobminer/internal/seniority"
	"github.com/jonathan/jobminer/internal/types"
)

// Store is the persistence surface the pipeline needs. *db.DB
// implements it; tests substitute fakes.
type Store interface {
	Close()
	CreateRun(ctx context.Context, source string) (uuid.UUID, error)
	CompleteRun(ctx context.Context, runID uuid.UUID, status string) error
	SaveArtifact(ctx context.Context, runID uuid.UUID, stage string, content any) error
	GetArtifact(ctx context.Context, runID uuid.UUID, stage string) ([]byte, error)
	LastCompletedStage(ctx context.Context, runID uuid.UUID) (string, error)
	SaveDedupAudit(ctx context.Context, runID uuid.UUID, audit []dedup.AuditEntry) error
	SaveClusters(ctx context.Context, runID uuid.UUID, clusters []types.Cluster) error
	SaveKeywords(ctx context.Context, runID uuid.UUID, keywords []types.Keyword) error
	SaveJobs(ctx context.Context, runID uuid.UUID, records []types.JobRecord, joins []types.JobKeyword) error
}

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	// Input: either a batch file path or pre-read raw records.
	InputPath string
	Raw       []types.RawRecord
	SourceTag string

	// Normalization
	Now         time.Time
	DropInvalid bool

	// Deduplication
	FuzzyThreshold float64
	DedupShards    int

	// Classification
	Rules *seniority.Rules

	// Embedding
	MaxFeatures    int
	MinDF          int
	MaxDFRatio     float64
	ExtraStopwords []string

	// Clustering
	MinK         int
	MaxK         int
	TermClusterK int
	Seed         int64

	// Keyword curation. When TermCategories is empty, clusters are
	// auto-assigned: certification when most terms pass the acronym
	// filter, tech-stack otherwise.
	TermCategories map[int]types.KeywordCategory
	Cert           keywords.CertFilter
	DropTerms      map[string]bool

	// Behavior
	StageBudget time.Duration // Wall-clock limit per stage, 0 disables
	Verbose     bool
	DatabaseURL string
	Store       Store     // Pre-built store; overrides DatabaseURL
	ResumeRunID uuid.UUID // Continue a prior run from its last checkpoint
	Out         io.Writer // Verbose output destination, default os.Stdout
	OnProgress  ProgressCallback
}

// Result is the full output of one pipeline run.
type Result struct {
	RunID       uuid.UUID            `json:"run_id,omitempty"`
	Records     []types.JobRecord    `json:"records"`
	Clusters    []types.Cluster      `json:"clusters"`
	Keywords    []types.Keyword      `json:"keywords"`
	JobKeywords []types.JobKeyword   `json:"job_keywords"`
	Audit       []dedup.AuditEntry   `json:"dedup_audit"`
	KSelections []cluster.KSelection `json:"k_selections"`

	NormalizeStats normalize.Stats   `json:"normalize_stats"`
	DedupStats     dedup.Stats       `json:"dedup_stats"`
	TagStats       keywords.TagStats `json:"tag_stats"`
	AmbiguousCount int               `json:"ambiguous_count"`
}

// defaultTermClusterK bounds the vocabulary grouping when unconfigured.
const defaultTermClusterK = 8

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, stage, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Stage: stage, Message: message})
	}
}

// stageCtx derives a per-stage context honoring the stage budget.
func stageCtx(ctx context.Context, budget time.Duration) (context.Context, context.CancelFunc) {
	if budget <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, budget)
}

// RunPipeline orchestrates the full analysis pipeline: ingest,
// normalize, the concurrent dedup and classify branches, embed,
// cluster, curate, and tag. Stage checkpoints and final outputs are
// persisted when a database URL is configured; otherwise the run is
// purely in-memory.
func RunPipeline(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	printer := observability.NewPrinter(opts.Out)
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	// Initialize persistence if configured
	store := opts.Store
	var runID uuid.UUID
	if store == nil && opts.DatabaseURL != "" {
		database, err := db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			if opts.ResumeRunID != uuid.Nil {
				return nil, fmt.Errorf("resume requires a database connection: %w", err)
			}
			fmt.Fprintf(opts.Out, "Warning: Failed to connect to database: %v\n", err)
			fmt.Fprintf(opts.Out, "Continuing without database persistence...\n")
		} else {
			defer database.Close()
			store = database
		}
	}
	if store != nil && opts.ResumeRunID == uuid.Nil {
		var err error
		runID, err = store.CreateRun(ctx, opts.SourceTag)
		if err != nil {
			return nil, fmt.Errorf("failed to create run: %w", err)
		}
	}
	if opts.ResumeRunID != uuid.Nil && store == nil {
		return nil, fmt.Errorf("resume requires a database connection")
	}

	result := &Result{RunID: runID}
	failRun := func(err error) (*Result, error) {
		if store != nil && runID != uuid.Nil {
			_ = store.CompleteRun(ctx, runID, db.RunStatusFailed)
		}
		return nil, err
	}
	// Checkpoints degrade resume when they fail but never fail the run.
	checkpoint := func(stage string, content any) {
		if store == nil || runID == uuid.Nil {
			return
		}
		if err := store.SaveArtifact(ctx, runID, stage, content); err != nil {
			fmt.Fprintf(opts.Out, "Warning: failed to checkpoint %s stage: %v\n", stage, err)
		}
	}

	var raw []types.RawRecord
	var records []types.JobRecord
	resumeFrom := ""
	if opts.ResumeRunID != uuid.Nil {
		runID = opts.ResumeRunID
		result.RunID = runID
		var err error
		raw, records, resumeFrom, err = loadCheckpoint(ctx, store, runID)
		if err != nil {
			return nil, fmt.Errorf("resume failed: %w", err)
		}
		fmt.Fprintf(opts.Out, "Resuming run %s after the %s stage\n", runID, resumeFrom)
	}

	// Stage 1: ingest
	if !stageDone(resumeFrom, StageIngest) {
		raw = opts.Raw
		if len(raw) == 0 && opts.InputPath != "" {
			fmt.Fprintf(opts.Out, "Step 1/8: Ingesting batch from %s...\n", opts.InputPath)
			var err error
			raw, err = ingestion.ReadBatch(opts.InputPath, opts.SourceTag)
			if err != nil {
				return failRun(fmt.Errorf("ingest failed: %w", err))
			}
		}
		if len(raw) == 0 {
			return failRun(fmt.Errorf("no input records: provide a batch file or raw records"))
		}
		emitProgress(&opts, StageIngest, fmt.Sprintf("Ingested %d raw records", len(raw)))
		checkpoint(db.StageIngest, raw)
	}

	// Stage 2: normalize
	if !stageDone(resumeFrom, StageNormalize) {
		fmt.Fprintf(opts.Out, "Step 2/8: Normalizing %d raw records...\n", len(raw))
		start := time.Now()
		var normStats normalize.Stats
		records, normStats = normalize.Batch(raw, normalize.Options{Now: opts.Now, DropInvalid: opts.DropInvalid})
		result.NormalizeStats = normStats
		if opts.Verbose {
			printer.PrintStageReport(StageNormalize, normStats.In, normStats.Out, normStats.Dropped, normStats.Flagged, time.Since(start))
		}
		emitProgress(&opts, StageNormalize, fmt.Sprintf("Normalized %d records", normStats.Out))
		checkpoint(db.StageNormalize, records)
	}

	// Stages 3+4: dedup and classify run concurrently on the
	// normalized records. The classify branch computes levels into a
	// map instead of mutating, so the two branches never write the
	// same memory.
	if !stageDone(resumeFrom, StageDedup) {
		fmt.Fprintf(opts.Out, "Step 3/8: Deduplicating %d records...\n", len(records))
		fmt.Fprintf(opts.Out, "Step 4/8: Classifying seniority...\n")
		rules := seniority.DefaultRules()
		if opts.Rules != nil {
			rules = *opts.Rules
		}

		g, gCtx := errgroup.WithContext(ctx)
		var dedupResult *dedup.Result
		var levels map[string]seniority.Classification
		var mu sync.Mutex

		g.Go(func() error {
			dCtx, cancel := stageCtx(gCtx, opts.StageBudget)
			defer cancel()
			res, err := dedup.Run(dCtx, records, dedup.Options{Threshold: opts.FuzzyThreshold, Shards: opts.DedupShards})
			if err != nil {
				return fmt.Errorf("dedup failed: %w", err)
			}
			mu.Lock()
			dedupResult = res
			mu.Unlock()
			return nil
		})

		g.Go(func() error {
			classified := make(map[string]seniority.Classification, len(records))
			for i := range records {
				if err := gCtx.Err(); err != nil {
					return err
				}
				classified[records[i].JobID] = seniority.Classify(records[i].Title, records[i].EmploymentType, rules)
			}
			mu.Lock()
			levels = classified
			mu.Unlock()
			return nil
		})

		if err := g.Wait(); err != nil {
			return failRun(err)
		}

		records = dedupResult.Records
		result.Audit = dedupResult.Audit
		result.DedupStats = dedupResult.Stats
		for i := range records {
			c := levels[records[i].JobID]
			records[i].CareerLevel = c.Level
			records[i].IsAmbiguous = c.Ambiguous
			if c.Ambiguous {
				result.AmbiguousCount++
			}
		}
		if opts.Verbose {
			printer.PrintDedupReport(result.Audit)
			printer.PrintCareerLevels(records)
		}
		emitProgress(&opts, StageDedup, fmt.Sprintf("%d records survive deduplication", len(records)))
		emitProgress(&opts, StageClassify, fmt.Sprintf("%d records flagged ambiguous", result.AmbiguousCount))
		checkpoint(db.StageDedup, records)
		if store != nil && runID != uuid.Nil {
			if err := store.SaveDedupAudit(ctx, runID, result.Audit); err != nil {
				fmt.Fprintf(opts.Out, "Warning: failed to save dedup audit: %v\n", err)
			}
		}
	} else {
		for i := range records {
			if records[i].IsAmbiguous {
				result.AmbiguousCount++
			}
		}
	}

	// Stage 5: embed
	fmt.Fprintf(opts.Out, "Step 5/8: Embedding %d records...\n", len(records))
	docs := make([]string, len(records))
	for i, rec := range records {
		docs[i] = rec.Title + " " + rec.Description
	}
	eCtx, cancel := stageCtx(ctx, opts.StageBudget)
	vectorizer, err := embedding.Fit(eCtx, docs, embedding.VectorizerOptions{
		MaxFeatures:    opts.MaxFeatures,
		MinDF:          opts.MinDF,
		MaxDFRatio:     opts.MaxDFRatio,
		ExtraStopwords: opts.ExtraStopwords,
	})
	if err != nil {
		cancel()
		return failRun(fmt.Errorf("embedding fit failed: %w", err))
	}
	vectors, err := vectorizer.Transform(eCtx, docs)
	cancel()
	if err != nil {
		return failRun(fmt.Errorf("embedding transform failed: %w", err))
	}
	for i := range records {
		records[i].Embedding = vectors[i]
	}
	emitProgress(&opts, StageEmbed, fmt.Sprintf("Embedded %d records into %d dimensions", len(records), vectorizer.Dimensions()))
	checkpoint(db.StageEmbed, vectorizer.Vocabulary())

	// Stage 6: cluster jobs
	fmt.Fprintf(opts.Out, "Step 6/8: Clustering job embeddings...\n")
	kmOpts := cluster.KMeansOptions{}.WithSeed(opts.Seed)
	cCtx, cancel := stageCtx(ctx, opts.StageBudget)
	kmResult, bestK, evaluations, err := cluster.SelectK(cCtx, vectors, opts.MinK, opts.MaxK, kmOpts)
	cancel()
	if err != nil {
		return failRun(fmt.Errorf("clustering failed: %w", err))
	}
	result.KSelections = evaluations
	clusters, err := cluster.AssignJobs(records, kmResult)
	if err != nil {
		return failRun(fmt.Errorf("cluster assignment failed: %w", err))
	}
	result.Clusters = clusters
	if opts.Verbose {
		printer.PrintClusters(clusters)
	}
	emitProgress(&opts, StageCluster, fmt.Sprintf("Grouped jobs into %d clusters", bestK))
	// Cluster and keyword rows must land before the job rows that
	// reference them, so their write errors fail the run.
	if store != nil && runID != uuid.Nil {
		if err := store.SaveClusters(ctx, runID, clusters); err != nil {
			return failRun(fmt.Errorf("saving clusters: %w", err))
		}
	}

	// Stage 7: curate keywords from the term space
	fmt.Fprintf(opts.Out, "Step 7/8: Curating keywords from the vocabulary...\n")
	kCtx, cancel := stageCtx(ctx, opts.StageBudget)
	termClusters, err := clusterTerms(kCtx, vectorizer, vectors, opts.TermClusterK, opts.Seed)
	cancel()
	if err != nil {
		return failRun(fmt.Errorf("term clustering failed: %w", err))
	}
	curated := keywords.Curate(termClusters, keywords.CurationConfig{
		Assignments: termAssignments(termClusters, &opts),
		Cert:        opts.Cert,
		DropTerms:   opts.DropTerms,
	})
	result.Keywords = curated
	if opts.Verbose {
		printer.PrintKeywords(curated)
	}
	emitProgress(&opts, StageCurate, fmt.Sprintf("Curated %d keywords", len(curated)))
	if store != nil && runID != uuid.Nil {
		if err := store.SaveKeywords(ctx, runID, curated); err != nil {
			return failRun(fmt.Errorf("saving keywords: %w", err))
		}
	}

	// Stage 8: tag
	fmt.Fprintf(opts.Out, "Step 8/8: Tagging records against the keyword dictionary...\n")
	tCtx, cancel := stageCtx(ctx, opts.StageBudget)
	matcher, err := keywords.NewMatcher(curated)
	if err != nil {
		cancel()
		return failRun(fmt.Errorf("building keyword matcher failed: %w", err))
	}
	joins, tagStats := keywords.Tag(records, matcher)
	err = tCtx.Err()
	cancel()
	if err != nil {
		return failRun(fmt.Errorf("tag stage exceeded budget: %w", err))
	}
	result.JobKeywords = joins
	result.TagStats = tagStats
	emitProgress(&opts, StageTag, fmt.Sprintf("Tagged %d of %d records", tagStats.Tagged, tagStats.In))

	result.Records = records
	if store != nil && runID != uuid.Nil {
		if err := store.SaveJobs(ctx, runID, records, joins); err != nil {
			return failRun(err)
		}
		_ = store.CompleteRun(ctx, runID, db.RunStatusCompleted)
	}

	if opts.Verbose {
		printer.PrintRunSummary(runID.String(), len(records), len(clusters), tagStats.Coverage)
	}
	return result, nil
}

// stageDone reports whether a stage is already covered by the resumed
// checkpoint.
func stageDone(resumeFrom, stage string) bool {
	if resumeFrom == "" {
		return false
	}
	return stageIndex(stage) <= stageIndex(resumeFrom)
}

// loadCheckpoint restores the record set of a prior run from its most
// recent stage artifact. Checkpoints past dedup all derive from the
// deduplicated survivors, so the pipeline restarts at the embed stage.
func loadCheckpoint(ctx context.Context, store Store, runID uuid.UUID) ([]types.RawRecord, []types.JobRecord, string, error) {
	stage, err := store.LastCompletedStage(ctx, runID)
	if err != nil {
		return nil, nil, "", err
	}
	if stage == "" {
		return nil, nil, "", fmt.Errorf("run %s has no stage checkpoints", runID)
	}

	recordStage := stage
	switch stage {
	case StageIngest, StageNormalize:
	default:
		recordStage = StageDedup
	}

	content, err := store.GetArtifact(ctx, runID, recordStage)
	if err != nil {
		return nil, nil, "", err
	}
	if content == nil {
		return nil, nil, "", fmt.Errorf("run %s is missing the %s checkpoint", runID, recordStage)
	}

	if recordStage == StageIngest {
		var raw []types.RawRecord
		if err := json.Unmarshal(content, &raw); err != nil {
			return nil, nil, "", fmt.Errorf("failed to decode %s checkpoint: %w", recordStage, err)
		}
		return raw, nil, recordStage, nil
	}
	var records []types.JobRecord
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, nil, "", fmt.Errorf("failed to decode %s checkpoint: %w", recordStage, err)
	}
	return nil, records, recordStage, nil
}

// clusterTerms groups vocabulary terms by their per-document weight
// profiles (the transpose of the document matrix), so terms that
// co-occur across the same postings land in the same group. The
// clusters carry the terms' dominant surface forms, because curation's
// acronym detection needs the casing the documents actually used.
func clusterTerms(ctx context.Context, v *embedding.Vectorizer, docVectors [][]float64, k int, seed int64) ([]keywords.TermCluster, error) {
	terms := v.SurfaceForms()
	if len(terms) == 0 {
		return nil, nil
	}
	if k <= 0 {
		k = defaultTermClusterK
	}
	if k > len(terms) {
		k = len(terms)
	}

	termVectors := make([][]float64, len(terms))
	for t := range terms {
		vec := make([]float64, len(docVectors))
		for d := range docVectors {
			vec[d] = docVectors[d][t]
		}
		termVectors[t] = vec
	}

	res, err := cluster.KMeans(ctx, termVectors, cluster.KMeansOptions{K: k}.WithSeed(seed))
	if err != nil {
		return nil, err
	}

	grouped := make(map[int][]string)
	for t, assignment := range res.Assignments {
		grouped[assignment] = append(grouped[assignment], terms[t])
	}
	out := make([]keywords.TermCluster, 0, len(grouped))
	for id := 0; id < k; id++ {
		if len(grouped[id]) == 0 {
			continue
		}
		out = append(out, keywords.TermCluster{ClusterID: id, Terms: grouped[id]})
	}
	return out, nil
}

// termAssignments resolves the category of each term cluster: the
// configured mapping when present, otherwise a coarse auto-assignment
// that routes acronym-heavy clusters to certifications and the rest to
// tech-stack.
func termAssignments(termClusters []keywords.TermCluster, opts *RunOptions) map[int]types.KeywordCategory {
	if len(opts.TermCategories) > 0 {
		return opts.TermCategories
	}

	assignments := make(map[int]types.KeywordCategory, len(termClusters))
	for _, tc := range termClusters {
		acronyms := 0
		for _, term := range tc.Terms {
			if opts.Cert.Accept(term) {
				acronyms++
			}
		}
		if acronyms*2 > len(tc.Terms) {
			assignments[tc.ClusterID] = types.CategoryCertification
		} else {
			assignments[tc.ClusterID] = types.CategoryTechStack
		}
	}
	return assignments
}

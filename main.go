package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/genisson-ifba/enem-backend-integrated/apiserver"
	"github.com/genisson-ifba/enem-backend-integrated/config"
	"github.com/genisson-ifba/enem-backend-integrated/datauri"
	"github.com/genisson-ifba/enem-backend-integrated/overrides"
	"github.com/genisson-ifba/enem-backend-integrated/postproc"
	"github.com/genisson-ifba/enem-backend-integrated/questions"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	configFile      = kingpin.Flag("config", "YAML configuration file; its keys override the environment").String()
	dataURI         = kingpin.Flag("data-uri", "URI of the public exam data tree").String()
	overrideSource  = kingpin.Flag("override-source", "Published override strategy (remote, dir, mongo, none)").String()
	serveCmd        = kingpin.Command("serve", "Serve the exam API over HTTP")
	resolveCmd      = kingpin.Command("resolve", "Resolve a single question and print it as JSON")
	resolveYear     = resolveCmd.Flag("year", "Exam year").Required().Int()
	resolveQuestion = resolveCmd.Flag("question", "Question id").Required().String()
	resolveLanguage = resolveCmd.Flag("language", "Language variant (ingles, espanhol)").Default("").String()
	resolveRaw      = resolveCmd.Flag("raw", "Print the resolved document without post-processing").Default("false").Bool()
	loadYearCmd     = kingpin.Command("load-year", "Resolve every question of an exam year and print them as JSON")
	loadYearYear    = loadYearCmd.Flag("year", "Exam year").Required().Int()
)

var Log = config.Cfg().GetLogger()

func init() {
	overrides.RegisterBuiltins()
}

func main() {
	kingpin.UsageTemplate(kingpin.CompactUsageTemplate).Version("1.0")
	kingpin.CommandLine.Help = "ENEM exam API"
	cmd := kingpin.Parse()

	if *configFile != "" {
		if err := config.LoadFile(*configFile); err != nil {
			Log.Fatalf("Loading configuration failed with: %s", err.Error())
		}
	}
	cfg := config.Cfg()
	if *dataURI != "" {
		cfg.DataURI = *dataURI
	}
	if *overrideSource != "" {
		cfg.OverrideSource = *overrideSource
	}

	resolver, closer := buildResolverF(cfg)
	defer closer()

	switch cmd {
	case "serve":
		serve(cfg, resolver)
	case "resolve":
		q, err := resolver.Resolve(context.Background(), *resolveYear, *resolveQuestion, *resolveLanguage)
		if err != nil {
			Log.Fatalf("Resolution failed: %s", err.Error())
		}
		if !*resolveRaw {
			if err := getRewriterF(cfg).Apply(q); err != nil {
				Log.Fatalf("Post-processing failed: %s", err.Error())
			}
		}
		printJSON(q)
	case "load-year":
		qs := resolver.LoadAllQuestionsForYear(context.Background(), *loadYearYear)
		Log.Infof("Resolved %d questions for %d", len(qs), *loadYearYear)
		printJSON(qs)
	default:
		Log.Fatal("Unknown command")
	}
}

func serve(cfg *config.Config, resolver *questions.Resolver) {
	root := dataRootF(cfg)
	api := apiserver.NewAPI(resolver, getRewriterF(cfg), filepath.Join(root, "exams"), cfg.StaticMaxAge)
	srv := apiserver.NewServer(cfg, api)
	errc := srv.Start()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigc:
		Log.Infof("%s received, shutting down gracefully ...", sig)
		if err := srv.Stop(context.Background()); err != nil {
			Log.Errorf("Graceful shutdown failed: %s", err.Error())
		}
	case err := <-errc:
		if err != nil {
			Log.Fatalf("HTTP server failed: %s", err.Error())
		}
	}
}

func buildResolverF(cfg *config.Config) (*questions.Resolver, func()) {
	src, err := overrides.New(cfg.OverrideSource, cfg)
	if err != nil {
		Log.Fatalf("Invalid override source: %s", err.Error())
	}
	Log.Infof("Using %s override source", cfg.OverrideSource)
	closer := func() {}
	if c, ok := src.(io.Closer); ok {
		closer = func() {
			if err := c.Close(); err != nil {
				Log.Error("Closing override source: ", err)
			}
		}
	}
	store := questions.NewLocalStore(dataRootF(cfg))
	return questions.NewResolver(src, store, cfg.BulkConcurrency), closer
}

func dataRootF(cfg *config.Config) string {
	root, err := datauri.GetAbsolutePathFromFileURI(cfg.DataURI)
	if err != nil {
		Log.Fatalf("invalid data uri: %s", err.Error())
	}
	return root
}

func getRewriterF(cfg *config.Config) *postproc.Rewriter {
	rw, err := postproc.NewRewriter(cfg.MediaSourceHost, cfg.MediaPublicBase, cfg.LocalMediaPrefix)
	if err != nil {
		Log.Fatalf("invalid media configuration: %s", err.Error())
	}
	return rw
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		Log.Fatalf("encoding output: %s", err.Error())
	}
}

package main

import (
	"flag"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"dqx0.com/go/webfx/internal/config"
	"dqx0.com/go/webfx/internal/obs"
	"dqx0.com/go/webfx/webfx"
)

var (
	configPath = flag.String("config", "", "path to TOML config file")
	port       = flag.Int("port", 0, "listen port (overrides config)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		l := obs.ConsoleLogger("error")
		l.Fatal().Err(err).Msg("invalid configuration")
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	var log zerolog.Logger
	if cfg.Log.Pretty {
		log = obs.ConsoleLogger(cfg.Log.Level)
	} else {
		log = obs.NewLogger(os.Stderr, cfg.Log.Level)
	}

	meter := obs.NewMapMeter()
	s := webfx.New(
		webfx.WithLogger(log),
		webfx.WithMeter(meter),
		webfx.WithWorkers(cfg.Server.Workers),
		webfx.WithQueueDepth(cfg.Server.QueueDepth),
	)
	s.StaticFiles(cfg.Static.Dir)
	registerRoutes(s)

	if err := s.Start(cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
	log.Info().Int("port", cfg.Server.Port).Msg("try http://localhost:" + strconv.Itoa(cfg.Server.Port) + "/about")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	s.Stop()
	for k, v := range meter.Snapshot() {
		log.Info().Str("metric", k).Float64("value", v).Msg("final metric")
	}
}

func registerRoutes(s *webfx.Server) {
	s.Get("/hello", func(req *webfx.Request, res *webfx.Response) string {
		name := req.Values("name")
		if name == "" {
			name = "World"
		}
		return "Hello " + name + "!"
	})

	s.Get("/pi", func(req *webfx.Request, res *webfx.Response) string {
		res.JSON()
		return jsonBody(map[string]any{
			"value":       math.Pi,
			"description": "Mathematical constant PI",
		})
	})

	s.Get("/random", func(req *webfx.Request, res *webfx.Response) string {
		res.JSON()
		return jsonBody(map[string]any{"randomNumber": rand.Intn(1000) + 1})
	})

	s.Get("/calc", calcHandler)

	s.Get("/health", func(req *webfx.Request, res *webfx.Response) string {
		res.JSON()
		return jsonBody(map[string]any{
			"status":    "healthy",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	s.Get("/about", func(req *webfx.Request, res *webfx.Response) string {
		res.HTML()
		return aboutPage
	})
}

type calcResult struct {
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Operation string  `json:"operation"`
	Result    float64 `json:"result"`
}

func calcHandler(req *webfx.Request, res *webfx.Response) string {
	res.JSON()

	aStr := req.Values("a")
	bStr := req.Values("b")
	op := req.Values("op")
	if aStr == "" || bStr == "" || op == "" {
		res.Status(400)
		return errBody("Missing parameters. Use: /calc?a=10&b=5&op=add")
	}

	a, errA := strconv.ParseFloat(aStr, 64)
	b, errB := strconv.ParseFloat(bStr, 64)
	if errA != nil || errB != nil {
		res.Status(400)
		return errBody("Invalid number format")
	}

	var result float64
	switch strings.ToLower(op) {
	case "add":
		result = a + b
	case "subtract":
		result = a - b
	case "multiply":
		result = a * b
	case "divide":
		if b == 0 {
			res.Status(400)
			return errBody("Division by zero not allowed")
		}
		result = a / b
	default:
		res.Status(400)
		return errBody("Unsupported operation. Use: add, subtract, multiply, divide")
	}

	return jsonBody(calcResult{A: a, B: b, Operation: op, Result: result})
}

func jsonBody(v any) string {
	s, err := sonic.MarshalString(v)
	if err != nil {
		return `{"error": "encoding failed"}`
	}
	return s
}

func errBody(msg string) string {
	return jsonBody(map[string]string{"error": msg})
}

const aboutPage = `<html><body><h1>webfx demo</h1>
<p>A demonstration of the webfx framework.</p>
<p>Available endpoints:</p>
<ul>
<li><a href='/hello?name=Pedro'>/hello?name=Pedro</a></li>
<li><a href='/pi'>/pi</a></li>
<li><a href='/random'>/random</a></li>
<li><a href='/calc?a=10&b=5&op=add'>/calc?a=10&b=5&op=add</a></li>
<li><a href='/health'>/health</a></li>
</ul>
</body></html>`

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tagus/supplysense/pkg/agent"
	"github.com/tagus/supplysense/pkg/config"
	"github.com/tagus/supplysense/pkg/datagen"
	"github.com/tagus/supplysense/pkg/interfaces"
	"github.com/tagus/supplysense/pkg/logging"
	"github.com/tagus/supplysense/pkg/ontology"
)

const (
	version = "0.3.0"
	banner  = `
╔══════════════════════════════════════════════════════════════════════════════╗
║                             SupplySense CLI                                  ║
║                  Supply Chain Reasoning over an Ontology Graph               ║
║                              Version %s                                   ║
╚══════════════════════════════════════════════════════════════════════════════╝
`
	separator = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
)

var logger = logging.New()

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	command := os.Args[1]

	switch command {
	case "version", "--version", "-v":
		fmt.Printf("SupplySense CLI v%s\n", version)
	case "help", "--help", "-h":
		printUsage()
	case "run":
		runQuery()
	case "chat":
		startInteractiveChat()
	case "export":
		exportOntology()
	case "strategies":
		listStrategies()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Printf(banner, version)
	fmt.Println(`USAGE:
    supplysense-cli <command> [options]

COMMANDS:
    run         Answer a single query against a generated supply chain
    chat        Start an interactive query session
    export      Generate a supply chain and dump the ontology as JSON
    strategies  List the available reasoning strategies
    version     Show version information
    help        Show this help message

OPTIONS:
    --strategy=<name>   Reasoning strategy: reflex, world_model, goal_based
    --seed=<n>          Data generation seed (default 42)
    --scale=<f>         Data generation scale factor (default 1.0)
    --config=<file>     YAML config file (overrides environment defaults)
    --json              Print the full result as JSON instead of the answer

EXAMPLES:
    # Answer one query with the default reflex strategy
    supplysense-cli run "What are the inventory levels at Memphis Warehouse?"

    # Same query through the goal-based planner, full JSON result
    supplysense-cli run --strategy=goal_based --json "How is the network performing?"

    # Interactive session over a smaller dataset
    supplysense-cli chat --scale=0.5

    # Dump the generated ontology for inspection
    supplysense-cli export --file=ontology.json`)
}

type cliOptions struct {
	strategy   string
	seed       int64
	scale      float64
	configFile string
	asJSON     bool
	file       string
	rest       []string
}

func parseOptions(args []string) (*cliOptions, error) {
	cfg := config.LoadFromEnv()
	opts := &cliOptions{
		strategy: cfg.Agent.Strategy,
		seed:     cfg.Data.Seed,
		scale:    cfg.Data.ScaleFactor,
	}

	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--strategy="):
			opts.strategy = strings.TrimPrefix(arg, "--strategy=")
		case strings.HasPrefix(arg, "--seed="):
			seed, err := strconv.ParseInt(strings.TrimPrefix(arg, "--seed="), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid --seed: %w", err)
			}
			opts.seed = seed
		case strings.HasPrefix(arg, "--scale="):
			scale, err := strconv.ParseFloat(strings.TrimPrefix(arg, "--scale="), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid --scale: %w", err)
			}
			opts.scale = scale
		case strings.HasPrefix(arg, "--config="):
			opts.configFile = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "--file="):
			opts.file = strings.TrimPrefix(arg, "--file=")
		case arg == "--json":
			opts.asJSON = true
		default:
			opts.rest = append(opts.rest, arg)
		}
	}

	if opts.configFile != "" {
		fileCfg, err := config.LoadFromFile(opts.configFile)
		if err != nil {
			return nil, err
		}
		opts.strategy = fileCfg.Agent.Strategy
		opts.seed = fileCfg.Data.Seed
		opts.scale = fileCfg.Data.ScaleFactor
	}

	return opts, nil
}

func buildAgent(ctx context.Context, opts *cliOptions) (interfaces.Agent, *ontology.Graph) {
	graph := buildGraph(ctx, opts)

	a, err := agent.New(opts.strategy, graph, agent.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create agent: %v", err)
	}
	return a, graph
}

func buildGraph(ctx context.Context, opts *cliOptions) *ontology.Graph {
	generator := datagen.New(opts.seed, datagen.WithLogger(logger))
	graph, err := generator.Generate(ctx, opts.scale)
	if err != nil {
		log.Fatalf("Failed to generate supply chain data: %v", err)
	}
	return graph
}

func runQuery() {
	opts, err := parseOptions(os.Args[2:])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(opts.rest) == 0 {
		fmt.Println("Usage: supplysense-cli run [options] \"<query>\"")
		fmt.Println("Example: supplysense-cli run \"Where is Memphis Warehouse located?\"")
		return
	}
	query := strings.Join(opts.rest, " ")

	ctx := context.Background()
	a, _ := buildAgent(ctx, opts)

	result, err := a.ProcessQuery(ctx, query)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}

	printResult(result, opts.asJSON)
}

func printResult(result *interfaces.QueryResult, asJSON bool) {
	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal result: %v", err)
		}
		fmt.Println(string(data))
		return
	}

	fmt.Println()
	fmt.Println("Answer:")
	fmt.Println(separator)
	fmt.Println(result.Answer)
	fmt.Println(separator)
	fmt.Printf("strategy=%s confidence=%.2f steps=%d elapsed=%.2fms\n",
		result.Strategy, result.Confidence, len(result.Thoughts), result.ElapsedMs)
}

func startInteractiveChat() {
	opts, err := parseOptions(os.Args[2:])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf(banner, version)
	fmt.Println("Interactive Query Mode")
	fmt.Println("Type 'exit' or 'quit' to end the session, 'help' for commands")
	fmt.Println(separator)

	ctx := context.Background()
	a, graph := buildAgent(ctx, opts)
	fmt.Printf("Loaded %d entities, strategy: %s\n", graph.Len(), a.Name())

	showTrace := false
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("\n> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Printf("Error reading input: %v\n", err)
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		switch {
		case input == "exit" || input == "quit":
			fmt.Println("Goodbye!")
			return
		case input == "help":
			printChatHelp()
			continue
		case input == "trace":
			showTrace = !showTrace
			fmt.Printf("Reasoning trace display: %v\n", showTrace)
			continue
		case strings.HasPrefix(input, "strategy "):
			name := strings.TrimSpace(strings.TrimPrefix(input, "strategy "))
			next, err := agent.New(name, graph, agent.WithLogger(logger))
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			a = next
			fmt.Printf("Switched to strategy: %s\n", a.Name())
			continue
		}

		result, err := a.ProcessQuery(ctx, input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		fmt.Println(result.Answer)
		fmt.Printf("(%s, confidence %.2f, %.2fms)\n", result.Strategy, result.Confidence, result.ElapsedMs)

		if showTrace {
			fmt.Println(separator)
			for _, thought := range result.Thoughts {
				fmt.Printf("  %d. [%s] %s -> %s (%.2f)\n",
					thought.Step, thought.Action, thought.Thought, thought.Observation, thought.Confidence)
			}
		}
	}
}

func printChatHelp() {
	fmt.Println(`Available commands:
  help              - Show this help message
  trace             - Toggle display of the reasoning trace
  strategy <name>   - Switch strategy (reflex, world_model, goal_based)
  exit / quit       - End the session

Anything else is answered as a supply-chain query. Try:
  What are the inventory levels at Memphis Warehouse?
  Who supplies products to the network?
  How is the supply chain performing?`)
}

func exportOntology() {
	opts, err := parseOptions(os.Args[2:])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	ctx := context.Background()
	graph := buildGraph(ctx, opts)
	exported := graph.ExportAll()

	data, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal ontology: %v", err)
	}

	if opts.file == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(opts.file, data, 0600); err != nil {
		log.Fatalf("Failed to write %s: %v", opts.file, err)
	}
	fmt.Printf("Exported %d entities to %s\n", exported.Metadata.TotalEntities, opts.file)
}

func listStrategies() {
	fmt.Println("Available Reasoning Strategies:")
	fmt.Println(separator)
	fmt.Println("  reflex       - Pattern-matched intent dispatch with direct graph lookups")
	fmt.Println("  world_model  - Reflex plus a maintained internal model: demand patterns,")
	fmt.Println("                 utilization history, reorder recommendations, network health")
	fmt.Println("  goal_based   - Multi-step planning toward optimization goals with")
	fmt.Println("                 goal-achievement scoring")
}

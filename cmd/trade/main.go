// One-shot order placement tool.
//
//	trade -symbol BTCUSDT -side BUY -type MARKET -quantity 0.001
//	trade -symbol BTCUSDT -side SELL -type LIMIT -quantity 0.001 -price 100000
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"futures-trader-go/config"
	"futures-trader-go/gateway"
	"futures-trader-go/infrastructure/logger"
	"futures-trader-go/metrics"
	"futures-trader-go/order"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "config file path")
	symbol := flag.String("symbol", "", "trading pair (e.g. BTCUSDT)")
	side := flag.String("side", "", "order side: BUY or SELL")
	orderType := flag.String("type", "", "order type: MARKET or LIMIT")
	quantity := flag.String("quantity", "", "order quantity")
	price := flag.String("price", "", "limit price (required for LIMIT orders)")
	tif := flag.String("tif", "", "time in force for LIMIT orders: GTC, IOC or FOK (default GTC)")
	reduceOnly := flag.Bool("reduce-only", false, "only reduce an existing position")
	skipProbe := flag.Bool("skip-probe", false, "skip the connectivity check before placing the order")
	flag.Parse()

	if *symbol == "" || *side == "" || *orderType == "" || *quantity == "" {
		fmt.Fprintln(os.Stderr, "usage: trade -symbol SYMBOL -side BUY|SELL -type MARKET|LIMIT -quantity QTY [-price PRICE]")
		os.Exit(2)
	}

	cfg, err := config.LoadWithEnvOverrides(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Set %s and %s in the environment or the config file\n",
			config.EnvAPIKey, config.EnvAPISecret)
		os.Exit(1)
	}

	root, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer root.Close()
	log := root.Component("cli")

	if cfg.Metrics.Enabled {
		metrics.StartMetricsServer(cfg.Metrics.Addr)
	}

	client, err := gateway.NewBinanceRESTClient(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, cfg.Gateway.APISecret, root.Component("client"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Metrics.Enabled {
		client.Observer = metrics.Observer{}
	}

	printRequest(*symbol, *side, *orderType, *quantity, *price)

	if !*skipProbe {
		fmt.Println("Connecting to Binance Testnet...")
		if !client.TestConnectivity() {
			fmt.Fprintln(os.Stderr, "Error: Could not connect to Binance API")
			log.Error("API connectivity test failed")
			os.Exit(1)
		}
		fmt.Print("Connected successfully\n\n")
	}

	mgr := order.NewManager(client, root.Component("orders"))

	fmt.Println("Placing order...")
	result := mgr.PlaceOrder(order.Request{
		Symbol:      *symbol,
		Side:        *side,
		Type:        *orderType,
		Quantity:    *quantity,
		Price:       *price,
		TimeInForce: *tif,
		ReduceOnly:  *reduceOnly,
	})

	if cfg.Metrics.Enabled {
		metrics.RecordOrderResult(metricLabel(result))
	}

	fmt.Println(result.Summary())

	if !result.Success {
		log.Error("order failed", zap.String("error", result.Error), zap.String("type", result.ErrorType))
		os.Exit(1)
	}
	log.Info("order completed", zap.Int64("order_id", result.OrderID))
}

func printRequest(symbol, side, orderType, quantity, price string) {
	rule := strings.Repeat("=", 50)
	fmt.Println("\n" + rule)
	fmt.Println("ORDER REQUEST")
	fmt.Println(rule)
	fmt.Printf("%-14s%s\n", "Symbol:", strings.ToUpper(symbol))
	fmt.Printf("%-14s%s\n", "Side:", strings.ToUpper(side))
	fmt.Printf("%-14s%s\n", "Type:", strings.ToUpper(orderType))
	fmt.Printf("%-14s%s\n", "Quantity:", quantity)
	if price != "" {
		fmt.Printf("%-14s%s\n", "Price:", price)
	}
	fmt.Println(rule + "\n")
}

func metricLabel(r order.Result) string {
	if r.Success {
		return "success"
	}
	return strings.ToLower(r.ErrorType)
}

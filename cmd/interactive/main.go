// Menu-driven interactive trading session against the futures testnet.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"futures-trader-go/config"
	"futures-trader-go/gateway"
	"futures-trader-go/infrastructure/logger"
	"futures-trader-go/metrics"
	"futures-trader-go/order"
)

const menu = `
==================================================
  MAIN MENU
==================================================
  [1] Place Market Order
  [2] Place Limit Order
  [3] View Open Orders
  [4] Cancel Order
  [5] Check Account Balance
  [6] Get Current Price
  [7] Test Connectivity
  [0] Exit
==================================================`

type session struct {
	in      *bufio.Scanner
	client  *gateway.BinanceRESTClient
	manager *order.Manager
}

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnvOverrides(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	root, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer root.Close()
	log := root.Component("interactive")

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

	// Pick up non-credential config edits while the session is running.
	// Credentials are pinned at construction; changing them needs a restart.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		w := config.Watcher{Path: *cfgPath}
		_ = w.Start(ctx, func(fresh config.AppConfig) {
			log.Info("config reloaded")
		})
	}()

	fmt.Println("Futures Testnet Trading Bot")
	fmt.Println("Connecting to Binance Testnet...")
	if !client.TestConnectivity() {
		fmt.Fprintln(os.Stderr, "Could not connect to Binance API")
		os.Exit(1)
	}
	fmt.Println("Connected successfully!")
	log.Info("interactive session started")

	s := &session{
		in:      bufio.NewScanner(os.Stdin),
		client:  client,
		manager: order.NewManager(client, root.Component("orders")),
	}

	for {
		fmt.Println(menu)
		choice := s.prompt("Select option")
		switch choice {
		case "1":
			s.placeOrder(order.TypeMarket)
		case "2":
			s.placeOrder(order.TypeLimit)
		case "3":
			s.viewOpenOrders()
		case "4":
			s.cancelOrder()
		case "5":
			s.checkBalance()
		case "6":
			s.getPrice()
		case "7":
			if s.client.TestConnectivity() {
				fmt.Println("  API reachable")
			} else {
				fmt.Println("  API unreachable")
			}
		case "0", "":
			fmt.Println("\nGoodbye! Happy trading!")
			log.Info("interactive session closed")
			return
		default:
			fmt.Println("  Invalid option. Please try again.")
		}
	}
}

func (s *session) prompt(label string) string {
	fmt.Printf("  %s: ", label)
	if !s.in.Scan() {
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

func (s *session) placeOrder(orderType string) {
	fmt.Printf("\n  -- %s ORDER --\n", orderType)

	req := order.Request{
		Type:     orderType,
		Symbol:   s.prompt("Enter symbol (e.g. BTCUSDT)"),
		Side:     s.prompt("Enter side (BUY/SELL)"),
		Quantity: s.prompt("Enter quantity"),
	}
	if orderType == order.TypeLimit {
		req.Price = s.prompt("Enter limit price")
	}

	confirm := s.prompt("Confirm order? (y/n)")
	if confirm != "y" && confirm != "yes" {
		fmt.Println("  Order cancelled.")
		return
	}

	fmt.Println("  Placing order...")
	result := s.manager.PlaceOrder(req)
	fmt.Println(result.Summary())
}

func (s *session) viewOpenOrders() {
	symbol := s.prompt("Enter symbol (or press Enter for all)")

	fmt.Println("  Fetching orders...")
	result := s.manager.OpenOrders(strings.ToUpper(symbol))
	if !result.Success {
		fmt.Printf("  Error: %s\n", result.Error)
		return
	}
	if len(result.Orders) == 0 {
		fmt.Println("  No open orders found.")
		return
	}

	fmt.Printf("  Found %d open order(s):\n", len(result.Orders))
	for i, o := range result.Orders {
		fmt.Printf("\n  Order %d\n", i+1)
		fmt.Printf("    ID:       %v\n", o["orderId"])
		fmt.Printf("    Symbol:   %v\n", o["symbol"])
		fmt.Printf("    Side:     %v\n", o["side"])
		fmt.Printf("    Type:     %v\n", o["type"])
		fmt.Printf("    Price:    %v\n", o["price"])
		fmt.Printf("    Quantity: %v\n", o["origQty"])
		fmt.Printf("    Status:   %v\n", o["status"])
	}
}

func (s *session) cancelOrder() {
	symbol := s.prompt("Enter symbol")
	rawID := s.prompt("Enter order ID")
	orderID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		fmt.Printf("  Invalid order ID: %s\n", rawID)
		return
	}

	result := s.manager.CancelOrder(strings.ToUpper(symbol), orderID)
	if !result.Success {
		fmt.Printf("  Error: %s\n", result.Error)
		return
	}
	fmt.Printf("  Order %d cancelled (status %s)\n", orderID, result.Status)
}

func (s *session) checkBalance() {
	fmt.Println("  Fetching account info...")
	account, err := s.client.AccountInfo()
	if err != nil {
		fmt.Printf("  Error fetching balance: %v\n", err)
		return
	}

	fmt.Println("\n  ACCOUNT SUMMARY")
	fmt.Printf("    Total Balance:  %s\n", order.FormatPrice(accountField(account, "totalWalletBalance")))
	fmt.Printf("    Available:      %s\n", order.FormatPrice(accountField(account, "availableBalance")))
	fmt.Printf("    Unrealized PnL: %s\n", order.FormatPrice(accountField(account, "totalUnrealizedProfit")))
}

func (s *session) getPrice() {
	symbol := strings.ToUpper(s.prompt("Enter symbol (e.g. BTCUSDT)"))

	fmt.Println("  Fetching price...")
	data, err := s.client.SymbolPrice(symbol)
	if err != nil {
		fmt.Printf("  Error fetching price: %v\n", err)
		return
	}
	fmt.Printf("  %s  %s\n", symbol, order.FormatPrice(accountField(data, "price")))
}

func accountField(doc map[string]any, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return "0"
}

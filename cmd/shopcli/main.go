package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"storefront-be/internal/dto"
	"storefront-be/internal/entity"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

const usage = `usage: shopcli <command> [args]

commands:
  categories                          list categories
  products [-category id] [-q text]   list products
  show <product>                      product detail (id or slug)
  add <product>                       add one unit to the cart
  cart                                show the cart
  qty <item> <n>                      set a cart line quantity (id or line number)
  rm <item>                           remove a cart line
  checkout -name N -email E -address A
  orders                              list placed orders
  chat <message>                      ask the shopping assistant
  history                             show the assistant conversation
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	baseURL := os.Getenv("STOREFRONT_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000/api"
	}

	client, err := sessionClient(baseURL, defaultSessionFile())
	if err != nil {
		color.Red("Failed to obtain a session: %v", err)
		os.Exit(1)
	}

	if err := run(client, os.Args[1], os.Args[2:]); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// sessionClient reuses the stored session id or creates and stores a new one.
func sessionClient(baseURL, sessionFile string) (*apiClient, error) {
	if id := loadSession(sessionFile); id != uuid.Nil {
		return newAPIClient(baseURL, id), nil
	}

	id, err := newAPIClient(baseURL, uuid.Nil).CreateSession()
	if err != nil {
		return nil, err
	}
	if err := saveSession(sessionFile, id); err != nil {
		color.Yellow("Warn: could not store session id: %v", err)
	}
	return newAPIClient(baseURL, id), nil
}

func run(client *apiClient, command string, args []string) error {
	switch command {
	case "categories":
		categories, err := client.Categories()
		if err != nil {
			return err
		}
		for _, c := range categories {
			fmt.Printf("%s  %-20s %s\n", c.Id, c.Name, c.Description)
		}

	case "products":
		fs := flag.NewFlagSet("products", flag.ExitOnError)
		category := fs.String("category", "", "category id")
		query := fs.String("q", "", "search text")
		_ = fs.Parse(args)

		products, err := client.Products(*category, *query)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			color.Yellow("No products found")
		}
		for _, p := range products {
			printProductLine(p)
		}

	case "show":
		if len(args) != 1 {
			return fmt.Errorf("usage: show <product>")
		}
		product, err := resolveProduct(client, args[0])
		if err != nil {
			return err
		}
		color.Cyan(product.Name)
		fmt.Printf("  %s\n  price: %s\n  stock: %d (%s)\n  id:    %s\n",
			product.Description, product.Price.StringFixed(2), product.Stock, product.StockStatus, product.Id)

	case "add":
		if len(args) != 1 {
			return fmt.Errorf("usage: add <product>")
		}
		product, err := resolveProduct(client, args[0])
		if err != nil {
			return err
		}
		cart, err := client.AddToCart(product.Id)
		if err != nil {
			return err
		}
		color.Green("Added %s", product.Name)
		printCart(cart)

	case "cart":
		cart, err := client.Cart()
		if err != nil {
			return err
		}
		printCart(cart)

	case "qty":
		if len(args) != 2 {
			return fmt.Errorf("usage: qty <item> <n>")
		}
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity must be a number")
		}
		itemId, err := resolveCartItem(client, args[0])
		if err != nil {
			return err
		}
		cart, err := client.UpdateQuantity(itemId, quantity)
		if err != nil {
			return err
		}
		printCart(cart)

	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: rm <item>")
		}
		itemId, err := resolveCartItem(client, args[0])
		if err != nil {
			return err
		}
		cart, err := client.RemoveFromCart(itemId)
		if err != nil {
			return err
		}
		printCart(cart)

	case "checkout":
		fs := flag.NewFlagSet("checkout", flag.ExitOnError)
		name := fs.String("name", "", "customer name")
		email := fs.String("email", "", "customer email")
		address := fs.String("address", "", "shipping address")
		_ = fs.Parse(args)

		order, err := client.PlaceOrder(dto.PlaceOrderRequest{
			CustomerName:    *name,
			CustomerEmail:   *email,
			CustomerAddress: *address,
		})
		if err != nil {
			return err
		}
		color.Green("Order %s placed, total %s", order.OrderNumber, order.TotalAmount.StringFixed(2))

	case "orders":
		orders, err := client.Orders()
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			color.Yellow("No orders yet")
		}
		for _, o := range orders {
			fmt.Printf("%s  %s  %-10s %10s\n", o.OrderNumber, o.CreatedAt.Format("2006-01-02 15:04"), o.Status, o.TotalAmount.StringFixed(2))
		}

	case "chat":
		if len(args) == 0 {
			return fmt.Errorf("usage: chat <message>")
		}
		res, err := client.Chat(strings.Join(args, " "))
		if err != nil {
			return err
		}
		printChatMessage(res.Reply)

	case "history":
		messages, err := client.ChatHistory()
		if err != nil {
			return err
		}
		for _, m := range messages {
			printChatMessage(m)
		}

	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

// resolveProduct accepts a product id or slug.
func resolveProduct(client *apiClient, ref string) (*dto.ProductResponse, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return client.Product(id)
	}

	products, err := client.Products("", "")
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.Slug == ref {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no product with slug %q", ref)
}

// resolveCartItem accepts a cart line id or its 1-based position as printed by "cart".
func resolveCartItem(client *apiClient, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}

	n, err := strconv.Atoi(ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%q is neither a line id nor a line number", ref)
	}
	cart, err := client.Cart()
	if err != nil {
		return uuid.Nil, err
	}
	if n < 1 || n > len(cart.Items) {
		return uuid.Nil, fmt.Errorf("cart has no line %d", n)
	}
	return cart.Items[n-1].Id, nil
}

func printProductLine(p *dto.ProductResponse) {
	line := fmt.Sprintf("%-28s %10s  %-12s %s", p.Slug, p.Price.StringFixed(2), p.StockStatus, p.Name)
	if p.Featured {
		color.Cyan(line)
		return
	}
	fmt.Println(line)
}

func printCart(cart *dto.CartResponse) {
	if len(cart.Items) == 0 {
		color.Yellow("Your cart is empty")
		return
	}
	for i, item := range cart.Items {
		name := item.ProductId.String()
		if item.Product != nil {
			name = item.Product.Name
		}
		fmt.Printf("%2d. %-30s x%-3d %10s\n", i+1, name, item.Quantity, item.LineTotal.StringFixed(2))
	}
	color.Green("%d items, total %s", cart.ItemCount, cart.Total.StringFixed(2))
}

func printChatMessage(m *dto.ChatMessageResponse) {
	if m == nil {
		return
	}
	if m.Role == entity.ChatRoleUser {
		color.Cyan("you: %s", m.Content)
		return
	}
	fmt.Printf("assistant: %s\n", m.Content)
}

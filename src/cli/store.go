package cli

import (
	"errors"
	"fmt"
	"slices"

	"historyatlas/src/client/auth"
	"historyatlas/src/client/cart"
	"historyatlas/src/client/catalog"
	"historyatlas/src/domain/entities"
)

func (c *ProductsCommand) Execute(args []string) error {
	r := c.runner
	return r.withApp(func(a *app) error {
		products, err := a.client.Products(r.ctx)
		if err != nil {
			return err
		}

		filter := catalog.ProductFilter{Category: c.Category, Search: c.Search}
		listing := filter.Apply(products)
		if c.Featured > 0 {
			listing = catalog.Featured(listing, c.Featured)
		}
		return render(r.out, "products", catalog.ProductCards(listing))
	})
}

type cartView struct {
	Items    []entities.LineItem
	Count    int
	Subtotal float64
	Total    float64
}

func showCart(r *Runner, shoppingCart *cart.Cart) error {
	return render(r.out, "cart", cartView{
		Items:    shoppingCart.Items(),
		Count:    shoppingCart.Count(),
		Subtotal: shoppingCart.Subtotal(),
		Total:    shoppingCart.Total(),
	})
}

func (c *CartAddCommand) Execute(args []string) error {
	r := c.runner
	return r.withApp(func(a *app) error {
		products, err := a.client.Products(r.ctx)
		if err != nil {
			return err
		}

		i := slices.IndexFunc(products, func(p entities.Product) bool { return p.ID == c.ID })
		if i < 0 {
			return fmt.Errorf("product %q not found", c.ID)
		}

		if err := a.cart.Add(products[i]); err != nil {
			return err
		}

		fmt.Fprintf(r.out, "%s added to cart!\n", products[i].Name)
		return showCart(r, a.cart)
	})
}

func (c *CartRemoveCommand) Execute(args []string) error {
	r := c.runner
	return r.withApp(func(a *app) error {
		if err := a.cart.Remove(c.ID); err != nil {
			return err
		}
		return showCart(r, a.cart)
	})
}

func (c *CartQuantityCommand) Execute(args []string) error {
	r := c.runner
	return r.withApp(func(a *app) error {
		if err := a.cart.ChangeQuantity(c.ID, c.Delta); err != nil {
			return err
		}
		return showCart(r, a.cart)
	})
}

func (c *CartShowCommand) Execute(args []string) error {
	r := c.runner
	return r.withApp(func(a *app) error {
		return showCart(r, a.cart)
	})
}

func (c *CheckoutCommand) Execute(args []string) error {
	r := c.runner
	return r.withApp(func(a *app) error {
		order, err := a.cart.Checkout(r.ctx, a.session)
		switch {
		case errors.Is(err, cart.ErrCartNotCleared):
			r.logger.Warn("order placed but the saved cart was kept", "error", err)
			fmt.Fprintln(r.out, "Warning: the order was placed but your saved cart could not be cleared. Run `historyctl cart show` before checking out again.")
		case errors.Is(err, cart.ErrEmptyCart):
			return errors.New("your cart is empty, add products with `historyctl cart add --id <product>`")
		case errors.Is(err, auth.ErrNotAuthenticated):
			return fmt.Errorf("%w: log in with `historyctl login --email <email> --password <password>` to checkout", err)
		case err != nil:
			return fmt.Errorf("failed to place order: %w", err)
		}

		fmt.Fprintf(r.out, "Order placed successfully! Total: %s\n", catalog.FormatPrice(order.Total))
		return render(r.out, "order", order)
	})
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"house-rent-api/internal/domain"
	"house-rent-api/pkg/client"
)

var listFlags struct {
	Type     string
	MinPrice int
	MaxPrice int
	Bedrooms int
	Location string
	Search   string
	All      bool // 管理端全量（含已下架）
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List properties, optionally filtered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}

		var props []domain.Property
		if listFlags.All {
			props, err = c.AdminListProperties(cmd.Context())
		} else {
			f := domain.PropertyFilter{
				Type:     listFlags.Type,
				Location: listFlags.Location,
				Search:   listFlags.Search,
			}
			if cmd.Flags().Changed("min-price") {
				f.MinPrice = &listFlags.MinPrice
			}
			if cmd.Flags().Changed("max-price") {
				f.MaxPrice = &listFlags.MaxPrice
			}
			if cmd.Flags().Changed("bedrooms") {
				f.Bedrooms = &listFlags.Bedrooms
			}
			props, err = c.ListProperties(cmd.Context(), f)
		}
		if err != nil {
			return err
		}
		for _, p := range props {
			fmt.Printf("%s  %-10s %8d  %dbd/%dba  %s  available=%v\n",
				p.ID, p.Type, p.Price, p.Bedrooms, p.Bathrooms, p.Location, p.Available)
		}
		fmt.Printf("%d properties\n", len(props))
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one property as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}
		p, err := c.GetProperty(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	},
}

var createFlags client.CreatePropertyInput

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a property (admin)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}
		p, err := c.CreateProperty(cmd.Context(), createFlags)
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", p.ID)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id> <partial-json>",
	Short: "Partially update a property (admin); only supplied fields change",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}
		var u domain.PropertyUpdate
		if err := json.Unmarshal([]byte(args[1]), &u); err != nil {
			return fmt.Errorf("parse update body: %w", err)
		}
		p, err := c.UpdateProperty(cmd.Context(), args[0], u)
		if err != nil {
			return err
		}
		fmt.Printf("updated %s\n", p.ID)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a property (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}
		if err := c.DeleteProperty(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listFlags.Type, "type", "", "apartment|house|villa|studio|all")
	listCmd.Flags().IntVar(&listFlags.MinPrice, "min-price", 0, "minimum price")
	listCmd.Flags().IntVar(&listFlags.MaxPrice, "max-price", 0, "maximum price")
	listCmd.Flags().IntVar(&listFlags.Bedrooms, "bedrooms", 0, "exact bedroom count")
	listCmd.Flags().StringVar(&listFlags.Location, "location", "", "location substring")
	listCmd.Flags().StringVar(&listFlags.Search, "search", "", "search title/description/location")
	listCmd.Flags().BoolVar(&listFlags.All, "all", false, "admin: include unavailable properties")

	createCmd.Flags().StringVar(&createFlags.Title, "title", "", "title")
	createCmd.Flags().StringVar(&createFlags.Description, "description", "", "description")
	createCmd.Flags().IntVar(&createFlags.Price, "price", 0, "price in whole units")
	createCmd.Flags().StringVar(&createFlags.Location, "location", "", "location")
	createCmd.Flags().IntVar(&createFlags.Bedrooms, "bedrooms", 0, "bedrooms")
	createCmd.Flags().IntVar(&createFlags.Bathrooms, "bathrooms", 0, "bathrooms")
	createCmd.Flags().IntVar(&createFlags.Area, "area", 0, "area")
	createCmd.Flags().StringVar(&createFlags.Type, "type", "", "apartment|house|villa|studio")
	createCmd.Flags().StringSliceVar(&createFlags.Amenities, "amenity", nil, "amenity (repeatable)")
	createCmd.Flags().StringSliceVar(&createFlags.ImagePaths, "image", nil, "image file (repeatable, max 5)")

	rootCmd.AddCommand(listCmd, getCmd, createCmd, updateCmd, deleteCmd)
}

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jask/petlist/internal/devserver"
	"github.com/jask/petlist/internal/pets"
)

func newListCmd(e *env) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print all pets, optionally filtered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := e.svc.List(cmd.Context())
			if err != nil {
				return err
			}
			shown := pets.Filter(all, filter)
			for _, p := range shown {
				printPet(cmd.OutOrStdout(), p)
			}
			if len(shown) == 0 && filter != "" {
				if name, ok := pets.Closest(all, filter); ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "no pets match %q, did you mean %s?\n", filter, name)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "case-insensitive name substring")
	return cmd
}

type draftFlags struct {
	name, typ, breed, age string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "pet name")
	cmd.Flags().StringVar(&f.typ, "type", "", "pet type, e.g. Dog")
	cmd.Flags().StringVar(&f.breed, "breed", "", "pet breed")
	cmd.Flags().StringVar(&f.age, "age", "", "age in whole years")
}

func (f *draftFlags) draft(editingID string) pets.Draft {
	return pets.Draft{Name: f.name, Type: f.typ, Breed: f.breed, Age: f.age, EditingID: editingID}
}

func newAddCmd(e *env) *cobra.Command {
	var f draftFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a pet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := f.draft("").Validate()
			if err != nil {
				return err
			}
			p, err := e.svc.Create(cmd.Context(), *sub.Add)
			if err != nil {
				return err
			}
			printPet(cmd.OutOrStdout(), p)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newEditCmd(e *env) *cobra.Command {
	var f draftFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Replace every field of an existing pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := f.draft(args[0]).Validate()
			if err != nil {
				return err
			}
			p, err := e.svc.Update(cmd.Context(), *sub.Edit)
			if err != nil {
				return err
			}
			printPet(cmd.OutOrStdout(), p)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := e.svc.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", p.ID)
			return nil
		},
	}
}

func newServeCmd(e *env) *cobra.Command {
	var opts devserver.Options
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local GraphQL endpoint for development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				opts.Addr = e.cfg.Server.Addr
			}
			if !cmd.Flags().Changed("db") {
				opts.DB = e.cfg.Server.DB
			}
			return devserver.Serve(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "SQLite file; empty keeps pets in memory (overrides server.db)")
	cmd.Flags().BoolVar(&opts.Seed, "seed", false, "insert sample pets into an empty store")
	return cmd
}

func printPet(w io.Writer, p pets.Pet) {
	fmt.Fprintf(w, "%s\t%s\n", p.ID, p.Summary())
}

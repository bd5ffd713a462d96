package main

import (
	"encoding/json"
	"fmt"
	"os"

	"go-payroll/internal/app"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "payrollctl",
		Short:        "Operate the payroll back office from the command line",
		SilenceUsage: true,
	}
	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newImportAttendanceCmd(),
		newGenerateCmd(),
		newExportRegisterCmd(),
	)
	return root
}

// withInfra connects using the environment and closes afterwards.
func withInfra(fn func(inf *app.Infra) error) error {
	inf, err := app.Connect(app.LoadConfig())
	if err != nil {
		return err
	}
	defer inf.Close()
	return fn(inf)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withInfra(func(inf *app.Infra) error {
				return inf.Migrate(cmd.Context())
			})
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create or repair the EMPADMIN account from ADMIN_PASSWORD",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withInfra(func(inf *app.Infra) error {
				return inf.EnsureAdmin(cmd.Context())
			})
		},
	}
}

func newImportAttendanceCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import-attendance",
		Short: "Upsert attendance rows from a CSV file (employee_id,date,status)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			return withInfra(func(inf *app.Infra) error {
				result, err := inf.AttendanceService().ImportCSV(cmd.Context(), f)
				if err != nil {
					return err
				}
				return printJSON(cmd, result)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV file to import")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	var (
		employeeID string
		month      string
		all        bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate payslips for one employee or everyone",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all == (employeeID != "") {
				return fmt.Errorf("pass exactly one of --employee or --all")
			}
			return withInfra(func(inf *app.Infra) error {
				svc, err := inf.PayrollService(cmd.Context())
				if err != nil {
					return err
				}
				if all {
					result, err := svc.GenerateAll(cmd.Context(), month)
					if err != nil {
						return err
					}
					return printJSON(cmd, result)
				}
				slip, err := svc.Generate(cmd.Context(), employeeID, month)
				if err != nil {
					return err
				}
				return printJSON(cmd, slip)
			})
		},
	}
	cmd.Flags().StringVarP(&employeeID, "employee", "e", "", "employee id, e.g. EMP001")
	cmd.Flags().StringVarP(&month, "month", "m", "", "YYYY-MM, defaults to the current month")
	cmd.Flags().BoolVar(&all, "all", false, "generate for every non-admin employee")
	return cmd
}

func newExportRegisterCmd() *cobra.Command {
	var (
		month string
		out   string
	)
	cmd := &cobra.Command{
		Use:   "export-register",
		Short: "Write the latest payslip per employee to an XLSX file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withInfra(func(inf *app.Infra) error {
				svc, err := inf.PayrollService(cmd.Context())
				if err != nil {
					return err
				}
				doc, err := svc.ExportRegister(cmd.Context(), month)
				if err != nil {
					return err
				}
				if out == "" {
					out = doc.Filename
				}
				if err := os.WriteFile(out, doc.Data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(doc.Data))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "YYYY-MM, all months when empty")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, defaults to the generated file name")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

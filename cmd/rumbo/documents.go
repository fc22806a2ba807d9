package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvallesteros/rumbo/internal/analytics"
	"github.com/mvallesteros/rumbo/internal/cli"
	"github.com/mvallesteros/rumbo/internal/model"
)

func documentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "Manage documents of the selected travel plan",
		Long: `Track passports, visas, insurance policies, and tickets. Documents
expiring within 30 days are highlighted.`,
	}

	cmd.PersistentFlags().String("plan", "", "Plan id (defaults to the selected plan)")

	cmd.AddCommand(listDocumentsCmd())
	cmd.AddCommand(addDocumentCmd())
	cmd.AddCommand(editDocumentCmd())
	cmd.AddCommand(deleteDocumentCmd())

	return cmd
}

func parseDocumentType(value string) (model.DocumentType, error) {
	switch model.DocumentType(value) {
	case model.DocumentPassport, model.DocumentVisa, model.DocumentInsurance,
		model.DocumentTicket, model.DocumentOther:
		return model.DocumentType(value), nil
	default:
		return "", fmt.Errorf("unknown document type %q, expected pasaporte, visa, seguro, tiquete, or otro", value)
	}
}

func listDocumentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List travel documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}
			planID, err := resolvePlanID(ctx, cmd)
			if err != nil {
				return err
			}

			documents, err := client.Documents().ListByPlan(ctx, planID)
			if err != nil {
				return err
			}

			search, _ := cmd.Flags().GetString("filter")
			docType, _ := cmd.Flags().GetString("type")
			sortKey, _ := cmd.Flags().GetString("sort")
			desc, _ := cmd.Flags().GetBool("desc")
			expiring, _ := cmd.Flags().GetBool("expiring")

			now := time.Now()
			filters := []analytics.Filter[model.TravelDocument]{
				analytics.Substring(search,
					func(d model.TravelDocument) string { return d.Name },
					func(d model.TravelDocument) string { return d.Number },
				),
				analytics.Exact(docType, func(d model.TravelDocument) string { return string(d.Type) }),
			}
			if expiring {
				filters = append(filters, func(d model.TravelDocument) bool {
					return analytics.Bucket(analytics.DaysUntil(d.ExpiryDate, now), analytics.DueSoonTravelDays) != analytics.UrgencyNormal
				})
			}
			comparators := map[string]analytics.Comparator[model.TravelDocument]{
				"nombre":      func(a, b model.TravelDocument) int { return strings.Compare(a.Name, b.Name) },
				"vencimiento": compareTime(func(d model.TravelDocument) time.Time { return d.ExpiryDate }),
			}

			visible, err := analytics.View(documents, filters, comparators, sortKey, direction(desc))
			if err != nil {
				return err
			}

			if len(visible) == 0 {
				fmt.Println(cli.InfoStyle.Render("No hay documentos para este plan."))
				return nil
			}

			w := newTable("ID", "Nombre", "Tipo", "Número", "Vencimiento", "Verificado")
			for _, d := range visible {
				expiry := d.ExpiryDate.Format("2006-01-02")
				bucket := analytics.Bucket(analytics.DaysUntil(d.ExpiryDate, now), analytics.DueSoonTravelDays)
				expiry = cli.UrgencyStyle(bucket).Render(expiry)
				verified := "No"
				if d.Verified {
					verified = cli.SuccessStyle.Render("Sí")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					d.ID, d.Name, d.Type, d.Number, expiry, verified)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			stats := analytics.Aggregate(visible, analytics.Spec[model.TravelDocument]{
				"total":       analytics.CountAll[model.TravelDocument](),
				"verificados": analytics.CountWhere(func(d model.TravelDocument) bool { return d.Verified }),
				"porVencer": analytics.CountWhere(func(d model.TravelDocument) bool {
					return analytics.Bucket(analytics.DaysUntil(d.ExpiryDate, now), analytics.DueSoonTravelDays) != analytics.UrgencyNormal
				}),
			})
			printStats(stats, []statTile{
				{key: "total", label: "Documentos"},
				{key: "verificados", label: "Verificados"},
				{key: "porVencer", label: "Por vencer"},
			})
			return nil
		},
	}

	addListFlags(cmd, "nombre, vencimiento")
	cmd.Flags().String("type", "", "Only show documents of this type")
	cmd.Flags().Bool("expiring", false, "Only show expired or soon-to-expire documents")
	return cmd
}

func addDocumentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a travel document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}
			planID, err := resolvePlanID(ctx, cmd)
			if err != nil {
				return err
			}

			typeStr, _ := cmd.Flags().GetString("type")
			docType, err := parseDocumentType(typeStr)
			if err != nil {
				return err
			}
			number, _ := cmd.Flags().GetString("number")
			expiryStr, _ := cmd.Flags().GetString("expiry")

			document := &model.TravelDocument{
				PlanID: planID,
				Name:   args[0],
				Number: number,
				Type:   docType,
			}
			if expiryStr != "" {
				expiry, err := time.Parse("2006-01-02", expiryStr)
				if err != nil {
					return fmt.Errorf("invalid expiry date %q, expected YYYY-MM-DD: %w", expiryStr, err)
				}
				document.ExpiryDate = expiry
			}

			created, err := client.Documents().Create(ctx, document)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Documento '%s' registrado (%s).", created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().String("type", string(model.DocumentOther), "Document type (pasaporte, visa, seguro, tiquete, otro)")
	cmd.Flags().String("number", "", "Document number")
	cmd.Flags().String("expiry", "", "Expiry date (YYYY-MM-DD)")
	return cmd
}

func editDocumentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a travel document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			document, err := client.Documents().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				document.Name, _ = cmd.Flags().GetString("name")
			}
			if cmd.Flags().Changed("number") {
				document.Number, _ = cmd.Flags().GetString("number")
			}
			if cmd.Flags().Changed("type") {
				typeStr, _ := cmd.Flags().GetString("type")
				docType, err := parseDocumentType(typeStr)
				if err != nil {
					return err
				}
				document.Type = docType
			}
			if cmd.Flags().Changed("expiry") {
				expiryStr, _ := cmd.Flags().GetString("expiry")
				expiry, err := time.Parse("2006-01-02", expiryStr)
				if err != nil {
					return fmt.Errorf("invalid expiry date %q, expected YYYY-MM-DD: %w", expiryStr, err)
				}
				document.ExpiryDate = expiry
			}
			if cmd.Flags().Changed("verified") {
				document.Verified, _ = cmd.Flags().GetBool("verified")
			}
			if err := document.Validate(); err != nil {
				return err
			}

			updated, err := client.Documents().Update(ctx, document.ID, document)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Documento '%s' actualizado.", updated.Name)))
			return nil
		},
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("number", "", "New document number")
	cmd.Flags().String("type", "", "New type (pasaporte, visa, seguro, tiquete, otro)")
	cmd.Flags().String("expiry", "", "New expiry date (YYYY-MM-DD)")
	cmd.Flags().Bool("verified", false, "Mark the document as verified")
	return cmd
}

func deleteDocumentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a travel document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			document, err := client.Documents().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			hard, _ := cmd.Flags().GetBool("permanent")
			ok, err := confirmDelete(ctx, cmd, fmt.Sprintf("el documento '%s'", document.Name), hard)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(cli.FormatInfo("Operación cancelada."))
				return nil
			}

			err = runDestructive(os.Stderr, hard, "Eliminando documento", func() error {
				return client.Documents().Delete(ctx, document.ID, hard)
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Documento '%s' eliminado.", document.Name)))
			return nil
		},
	}

	addDeleteFlags(cmd)
	return cmd
}

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/compliance-hub/internal/model"
	"github.com/sells-group/compliance-hub/internal/registry"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Manage assessments and recorded answers",
}

var assessCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new assessment",
	Example: `  compliance-hub assess create --name "Acme GmbH" --classification essential \
      --revenue 250000000 --size-factor 1.2`,
	RunE: runAssessCreate,
}

var assessSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Record answers for one regulation from a YAML file",
	Long: `Records maturity answers (level 0-3 per question) for one regulation.
Resubmitting a question overwrites its previous answer.

The answer file is a YAML list:

  - question_id: q1
    category_id: incident
    level: 3
  - question_id: q2
    category_id: incident
    level: 1`,
	RunE: runAssessSubmit,
}

var assessListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assessments",
	RunE:  runAssessList,
}

func init() {
	f := assessCreateCmd.Flags()
	f.String("name", "", "organization name (required)")
	f.String("classification", "important", "regulatory tier: essential, important, not_applicable")
	f.Float64("revenue", 0, "annual revenue in EUR")
	f.Float64("size-factor", 1.0, "company size scaling factor for roadmap costs")
	_ = assessCreateCmd.MarkFlagRequired("name")

	sf := assessSubmitCmd.Flags()
	sf.String("assessment", "", "assessment ID (required)")
	sf.String("regulation", "", "regulation ID (required)")
	sf.String("file", "", "YAML answer file (required)")
	_ = assessSubmitCmd.MarkFlagRequired("assessment")
	_ = assessSubmitCmd.MarkFlagRequired("regulation")
	_ = assessSubmitCmd.MarkFlagRequired("file")

	assessCmd.AddCommand(assessCreateCmd, assessSubmitCmd, assessListCmd)
	rootCmd.AddCommand(assessCmd)
}

func runAssessCreate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	name, _ := cmd.Flags().GetString("name")
	classification, _ := cmd.Flags().GetString("classification")
	revenue, _ := cmd.Flags().GetFloat64("revenue")
	sizeFactor, _ := cmd.Flags().GetFloat64("size-factor")

	switch model.Classification(classification) {
	case model.ClassificationEssential, model.ClassificationImportant, model.ClassificationNotApplicable:
	default:
		return eris.Errorf("assess: unknown classification %q", classification)
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	a, err := st.CreateAssessment(ctx, name, model.CompanyProfile{
		Classification: model.Classification(classification),
		AnnualRevenue:  revenue,
		SizeFactor:     sizeFactor,
	})
	if err != nil {
		return eris.Wrap(err, "assess: create")
	}

	zap.L().Info("assessment created", zap.String("id", a.ID), zap.String("name", a.Name))
	fmt.Println(a.ID)
	return nil
}

func runAssessSubmit(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	assessmentID, _ := cmd.Flags().GetString("assessment")
	regulationID, _ := cmd.Flags().GetString("regulation")
	file, _ := cmd.Flags().GetString("file")

	reg, err := registry.Load()
	if err != nil {
		return err
	}
	if _, ok := reg.Regulation(regulationID); !ok {
		return eris.Errorf("assess: unknown regulation %q (have %v)", regulationID, reg.RegulationIDs())
	}

	answers, err := readAnswerFile(file)
	if err != nil {
		return err
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	if _, err := st.GetAssessment(ctx, assessmentID); err != nil {
		return eris.Wrapf(err, "assess: assessment %s", assessmentID)
	}
	if err := st.SaveAnswers(ctx, assessmentID, regulationID, answers); err != nil {
		return eris.Wrap(err, "assess: save answers")
	}

	zap.L().Info("answers recorded",
		zap.String("assessment", assessmentID),
		zap.String("regulation", regulationID),
		zap.Int("count", len(answers)),
	)
	fmt.Printf("Recorded %d answers for %s\n", len(answers), regulationID)
	return nil
}

func readAnswerFile(path string) ([]model.Answer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "assess: read %s", path)
	}

	var answers []model.Answer
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, eris.Wrapf(err, "assess: parse %s", path)
	}

	for i, a := range answers {
		if a.QuestionID == "" || a.CategoryID == "" {
			return nil, eris.Errorf("assess: answer %d is missing question_id or category_id", i)
		}
		if !a.Level.Valid() {
			return nil, eris.Errorf("assess: answer %q has level %d, want 0-%d", a.QuestionID, a.Level, model.MaxMaturityLevel)
		}
	}
	return answers, nil
}

func runAssessList(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	assessments, err := st.ListAssessments(ctx)
	if err != nil {
		return eris.Wrap(err, "assess: list")
	}

	formatAssessmentList(os.Stdout, assessments)
	return nil
}

func formatAssessmentList(out io.Writer, assessments []model.Assessment) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCLASSIFICATION\tREVENUE\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t----\t--------------\t-------\t-------")
	for _, a := range assessments {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%s\n",
			a.ID, a.Name, a.Profile.Classification, a.Profile.AnnualRevenue,
			a.CreatedAt.Format("2006-01-02"),
		)
	}
	_ = w.Flush()
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/coc-api/internal/config"
	"github.com/KirkDiggler/coc-api/internal/dice"
	"github.com/KirkDiggler/coc-api/internal/entities"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/investigator"
	"github.com/KirkDiggler/coc-api/internal/pkg/idgen"
)

var (
	invFirstName  string
	invSurname    string
	invGender     string
	invOccupation string
	invBirthplace string
	invResidence  string
	invAge        int
	invEra        string
	invSeed       int64
	invOverrides  map[string]int
	invCheck      string
	invDifficulty string
)

var investigatorCmd = &cobra.Command{
	Use:   "investigator",
	Short: "Generate an investigator and print its characteristics",
	Long: `Generate one investigator. Examples:

  investigator --first-name Harvey --surname Walters
  investigator --first-name Agatha --set STR=10 --set EDU=18 --seed 42
  investigator --first-name Carl --check POW --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runInvestigator,
}

func init() {
	f := investigatorCmd.Flags()
	f.StringVar(&invFirstName, "first-name", "", "first name (required)")
	f.StringVar(&invSurname, "surname", "", "surname")
	f.StringVar(&invGender, "gender", "x", "male, female or x")
	f.StringVar(&invOccupation, "occupation", "", "occupation")
	f.StringVar(&invBirthplace, "birthplace", "", "birthplace")
	f.StringVar(&invResidence, "residence", "", "residence")
	f.IntVar(&invAge, "age", 0, "age")
	f.StringVar(&invEra, "era", entities.EraNineteenTwenties.String(), "1920s, modern or pulp")
	f.Int64Var(&invSeed, "seed", 0, "seed for deterministic rolls (overrides COC_API_SEED, 0 picks a fresh seed)")
	f.StringToIntVar(&invOverrides, "set", nil, "override a characteristic's dice result, e.g. --set STR=10")
	f.StringVar(&invCheck, "check", "", "roll a check against this characteristic after generation")
	f.StringVar(&invDifficulty, "difficulty", entities.DifficultyRegular.String(), "regular, hard or extreme")

	_ = investigatorCmd.MarkFlagRequired("first-name")
}

func runInvestigator(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	if cmd.Flags().Changed("seed") {
		cfg.Seed = invSeed
	}
	if !cfg.Deterministic() {
		if cfg.Seed, err = dice.NewSeed(); err != nil {
			return err
		}
	}

	gender, err := entities.ParseGender(invGender)
	if err != nil {
		return err
	}
	era, err := entities.ParseEra(invEra)
	if err != nil {
		return err
	}

	overrides := make(map[entities.CharacteristicCode]int, len(invOverrides))
	for raw, value := range invOverrides {
		code, err := entities.ParseCharacteristicCode(strings.ToUpper(raw))
		if err != nil {
			return err
		}
		overrides[code] = value
	}

	svc, err := investigator.New(&investigator.Config{
		IDGenerator: idgen.NewUUID("inv"),
		Roller:      newRoller(logger, cfg),
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out, err := svc.CreateInvestigator(ctx, &investigator.CreateInvestigatorInput{
		FirstName:  invFirstName,
		Surname:    invSurname,
		Gender:     gender,
		Occupation: invOccupation,
		Birthplace: invBirthplace,
		Residence:  invResidence,
		Age:        invAge,
		Era:        era,
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printInvestigator(w, out)
	fmt.Fprintf(w, "\nseed: %d\n", cfg.Seed)

	if invCheck == "" {
		return nil
	}

	code, err := entities.ParseCharacteristicCode(strings.ToUpper(invCheck))
	if err != nil {
		return err
	}
	difficulty, err := entities.ParseDifficulty(invDifficulty)
	if err != nil {
		return err
	}

	check, err := svc.Check(ctx, &investigator.CheckInput{
		Investigator: out.Investigator,
		Code:         code,
		Difficulty:   difficulty,
	})
	if err != nil {
		return err
	}

	outcome := "failure"
	if check.Result.Success {
		outcome = "success"
	}
	fmt.Fprintf(w, "\n%s %s check: rolled %d against %d, %s\n",
		check.Result.Difficulty, check.Result.Code, check.Result.Value, check.Result.Threshold, outcome)

	return nil
}

func printInvestigator(w io.Writer, out *investigator.CreateInvestigatorOutput) {
	inv := out.Investigator

	fmt.Fprintf(w, "%s (%s)\n", inv.FullName(), inv.ID)
	if inv.Gender.Valid() {
		fmt.Fprintf(w, "A %s %s", inv.Era, inv.Gender.Person())
	} else {
		fmt.Fprintf(w, "A %s investigator", inv.Era)
	}
	if inv.Occupation != "" {
		fmt.Fprintf(w, ", %s", inv.Occupation)
	}
	if inv.Age > 0 {
		fmt.Fprintf(w, ", aged %d", inv.Age)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	rolls := make(map[entities.CharacteristicCode]*investigator.CharacteristicRoll, len(out.Rolls))
	for _, r := range out.Rolls {
		rolls[r.Code] = r
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHARACTERISTIC\tREGULAR\tHARD\tEXTREME\tROLL")
	for _, code := range sortedCodes(inv.Characteristics) {
		c := inv.Characteristics[code]
		source := ""
		if r, ok := rolls[code]; ok {
			if r.Overridden {
				source = fmt.Sprintf("%s set to %d", r.Notation, r.Raw)
			} else {
				source = r.Result.String()
			}
		}
		fmt.Fprintf(tw, "%s/%s\t%d\t%d\t%d\t%s\n", c.Description(), code, c.Regular(), c.Half(), c.Fifth(), source)
	}
	_ = tw.Flush()
}

// sortedCodes lists the codes present in sheet order
func sortedCodes(chars map[entities.CharacteristicCode]*entities.Characteristic) []entities.CharacteristicCode {
	out := make([]entities.CharacteristicCode, 0, len(chars))
	for _, code := range entities.AllCharacteristics {
		if _, ok := chars[code]; ok {
			out = append(out, code)
		}
	}
	return out
}

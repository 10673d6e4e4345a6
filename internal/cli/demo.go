package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/joi/pkg/joi"
)

type demoModel struct {
	ID    int
	Name  string
	Age   int
	Email string
}

type demoSchema struct {
	ID    joi.Number
	Name  joi.String
	Age   joi.Number
	Email joi.String
}

var nameRule = joi.BuildString().Pattern("[A-Z][a-z]+").Maximum(31).Required()

func newDemoSchema() demoSchema {
	return demoSchema{
		ID:    joi.BuildNumber().Positive().Less(100),
		Name:  nameRule,
		Age:   joi.BuildNumber().Minimum(18).Maximum(65),
		Email: joi.BuildString().Pattern(`^\S+@\S+$`).Maximum(49),
	}
}

func newDemoCmd() *cobra.Command {
	m := demoModel{ID: 10, Name: "Leonardo", Age: 18, Email: "leonardo@gmail.com"}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Validate the built-in example record",
		Long: `Validate an example user record:

  id    positive, less than 100
  name  required, [A-Z][a-z]+, at most 31 characters
  age   between 18 and 65
  email ^\S+@\S+$, at most 49 characters

Examples:
  joi demo
  joi demo --age 70`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newDemoSchema()
			res := joi.Validate(
				joi.Int("id", m.ID, s.ID),
				joi.Str("name", m.Name, s.Name),
				joi.Int("age", m.Age, s.Age),
				joi.Str("email", m.Email, s.Email),
			)
			return printVerdict(cmd.OutOrStdout(), res, res.Message())
		},
	}

	cmd.Flags().IntVar(&m.ID, "id", m.ID, "Record id")
	cmd.Flags().StringVar(&m.Name, "name", m.Name, "Record name")
	cmd.Flags().IntVar(&m.Age, "age", m.Age, "Record age")
	cmd.Flags().StringVar(&m.Email, "email", m.Email, "Record email")

	return cmd
}

func newNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name",
		Short: "Read a name from stdin and validate it",
		Long: `Read one line from stdin and check it is a capitalised name of at most
31 characters.

Examples:
  echo Leonardo | joi name`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("read name: %w", err)
			}
			name := strings.TrimRight(line, "\r\n")

			res := joi.Validate(joi.Str("name", name, nameRule))
			return printVerdict(cmd.OutOrStdout(), res, res.Message())
		},
	}
}

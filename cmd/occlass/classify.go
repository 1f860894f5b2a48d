package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/occupation-classifier/internal/models"
)

var readStdin bool

var demoInputs = []string{
	"消防車に乗って火を消す仕事",
	"エクセルの集計業務",
	"会社の経理を担当しています",
	"プログラミングでWebアプリを作っています",
	"お店でレジ打ちをしています",
	"病院で患者さんのケアをしています",
	"学校で子供たちに勉強を教えています",
	"レストランで料理を作っています",
}

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Classify one job description",
	Long: `Classifies the given text, or every non-empty line of stdin with --stdin.

Example:
  occlass classify "消防車に乗って火を消す仕事"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var inputs []string
		if readStdin {
			lines, err := readLines(cmd.InOrStdin())
			if err != nil {
				return err
			}
			inputs = lines
		} else {
			if len(args) == 0 {
				return fmt.Errorf("text argument is required (or use --stdin)")
			}
			inputs = []string{strings.Join(args, " ")}
		}

		classifier, err := newClassifier()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, input := range inputs {
			result, err := classifier.Classify(cmd.Context(), input)
			if err != nil {
				return err
			}
			printResult(out, result)
		}
		return nil
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Classify the built-in sample inputs and print a summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		classifier, err := newClassifier()
		if err != nil {
			return err
		}
		if err := classifier.Warmup(cmd.Context()); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		results := make([]*models.ClassificationResult, 0, len(demoInputs))
		for _, input := range demoInputs {
			result, err := classifier.Classify(cmd.Context(), input)
			if err != nil {
				return err
			}
			printResult(out, result)
			results = append(results, result)
		}

		fmt.Fprintln(out, strings.Repeat("=", 60))
		fmt.Fprintln(out, "全テストケースの結果サマリー")
		fmt.Fprintln(out, strings.Repeat("=", 60))
		for i, r := range results {
			fmt.Fprintf(out, "%d. 入力: 「%s」\n   → [%s] %s\n\n", i+1, r.UserInput, r.Code, r.Name)
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().BoolVar(&readStdin, "stdin", false, "classify each line read from stdin")
}

func printResult(w io.Writer, r *models.ClassificationResult) {
	fmt.Fprintf(w, "\n入力: 「%s」\n", r.UserInput)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "検索結果（上位%d件）:\n", len(r.Candidates))
	for i, c := range r.Candidates {
		fmt.Fprintf(w, "  %d. [%s] %s (類似度: %.4f)\n", i+1, c.Code, c.Name, c.Similarity)
	}
	fmt.Fprintln(w, "\n【判定結果】")
	fmt.Fprintf(w, "  職業コード: %s\n", r.Code)
	fmt.Fprintf(w, "  職業名: %s\n", r.Name)
	fmt.Fprintf(w, "  理由: %s\n", r.Reason)
	if !r.InCandidates {
		fmt.Fprintln(w, "  ⚠️ 判定コードは候補に含まれていません")
	}
	fmt.Fprintln(w, strings.Repeat("-", 60))
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return lines, nil
}

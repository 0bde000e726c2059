package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/bitweaver/Entropy-Engine/engine"
)

var Commands = [...]string{"encode", "help"}

func main() {
	application := os.Args[0]
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	encodeCmd := flag.Bool(Commands[0], false, "Encode File")
	helpCmd := flag.Bool(Commands[1], false, "Help")

	if len(os.Args) == 1 {
		fmt.Println("Please provide commands")
		os.Exit(1)
	}
	commandArgs := findIntersection(
		[]string{
			"--encode",
		},
		os.Args[1:],
	)
	flag.CommandLine.Parse(commandArgs)
	if !*encodeCmd {
		commandArgs = findIntersection(
			[]string{
				"--help",
			},
			os.Args[1:],
		)
		flag.CommandLine.Parse(commandArgs)
		if *helpCmd {
			fmt.Fprintf(os.Stderr, "Usage of %s:\n", application)
			fmt.Fprintf(os.Stderr, "Valid commands include:\n\t%s\n", strings.Join(Commands[:], ", "))
			fmt.Fprintf(os.Stderr, "Flag:\n")
			flag.PrintDefaults()
			return
		}
		fmt.Println("No command is selected. Encoding by default")
		cmdTrue := true
		encodeCmd = &cmdTrue
	}

	if *encodeCmd {
		encodeFS := flag.NewFlagSet("encode", flag.ExitOnError)
		encodeFS.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage of %s --encode [OPTIONS] <file(s)>\n", application)
			fmt.Fprintf(os.Stderr, "Valid options include:\n\t%s\n", strings.Join([]string{"algorithm, delete, outfileext, help"}, ", "))
			fmt.Fprintf(os.Stderr, "Flag:\n")
			encodeFS.PrintDefaults()
		}
		algorithmEncode := encodeFS.String("algorithm", "huffman", fmt.Sprintf("Which algorithm(s) to use, choices include: \n\t%s", strings.Join(engine.Engines[:], ", ")))
		deleteAfterEncode := encodeFS.Bool("delete", false, "Delete file after encoding")
		outputFileExtensionEncode := encodeFS.String("outfileext", ".rsn", "File extension used for the result")
		helpEncode := encodeFS.Bool("help", false, "Encode Help")
		commandArgs = findIntersection(
			[]string{
				"--algorithm",
				"--delete",
				"--outfileext",
			},
			os.Args[2:],
		)
		if len(commandArgs) == 0 {
			commandArgs = findIntersection(
				[]string{
					"--help",
				},
				os.Args[2:],
			)
		}
		encodeFS.Parse(commandArgs)
		if *helpEncode {
			encodeFS.Usage()
			return
		}

		var fileName string
		if len(os.Args) > 1 {
			i := 1
			for ; i < len(os.Args) && os.Args[i][0] == '-'; i++ {
			}
			if i == len(os.Args) {
				fmt.Println("No file provided for encoding")
				os.Exit(1)
			}
			fileName = os.Args[i]
		}
		files := strings.Split(fileName, ",")
		trimSpace(files)
		for _, f := range files {
			if _, err := os.Stat(f); os.IsNotExist(err) {
				fmt.Printf("Could not open the provided file %s\n", f)
				os.Exit(1)
			}
		}
		algorithmsChosen := strings.Split(*algorithmEncode, ",")
		trimSpace(algorithmsChosen)
		if err := engine.EncodeFiles(algorithmsChosen, files, *outputFileExtensionEncode); err != nil {
			color.Red("%v", err)
			os.Exit(1)
		}
		if *deleteAfterEncode {
			deleteFiles(files)
		}
	}
}

func findIntersection(commandList, argList []string) []string {
	set := make(map[string]struct{}, len(commandList))
	for _, c := range commandList {
		set[c] = struct{}{}
	}
	var out []string
	for _, arg := range argList {
		if _, ok := set[arg]; ok {
			out = append(out, arg)
		}
	}
	return out
}

func trimSpace(s []string) {
	for i := range s {
		s[i] = strings.TrimSpace(s[i])
	}
}

func deleteFiles(files []string) {
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			color.Red("Could not delete %s: %v", file, err)
			os.Exit(1)
		}
	}
}

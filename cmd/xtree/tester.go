package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benz9527/xtree/lib/tree"
	"github.com/benz9527/xtree/lib/xlog"
	"go.uber.org/zap"
)

const (
	choiceHelp = iota
	choiceTree
	choiceInsert
	choiceDelete
	choiceCountLeaves
	choiceHeight
	choiceInOrder
	choiceIsEmpty
	choicePrint
	choicePrintVerbose
	choiceQuit
)

// tester is the numbered menu over a single int32 tree.
type tester struct {
	in     *bufio.Scanner
	out    *bufio.Writer
	logger xlog.XLogger
	opts   []tree.TreeOption
	tree   tree.Tree[int32]
}

func newTester(in io.Reader, out io.Writer, logger xlog.XLogger, opts ...tree.TreeOption) *tester {
	return &tester{
		in:     bufio.NewScanner(in),
		out:    bufio.NewWriter(out),
		logger: logger,
		opts:   opts,
	}
}

func (ts *tester) println(format string, args ...any) {
	_, _ = fmt.Fprintf(ts.out, format+"\n", args...)
}

func (ts *tester) menu() {
	ts.println("====== Tree Test ======")
	ts.println("0. Help")
	ts.println("1. Choose a tree")
	ts.println("2. Insert a node to the tree")
	ts.println("3. Delete a node from the tree")
	ts.println("4. Count the number of leaves in a tree")
	ts.println("5. Return the height of a tree")
	ts.println("6. Print in-order traversal of the tree")
	ts.println("7. Check if the tree is empty")
	ts.println("8. Print the tree.")
	ts.println("9. Print verbose information of the tree.")
	ts.println("10. Quit")
}

// readLine flushes the pending output first, so prompts show up
// before blocking on the input.
func (ts *tester) readLine() (string, error) {
	if err := ts.out.Flush(); err != nil {
		return "", err
	}
	if !ts.in.Scan() {
		if err := ts.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(ts.in.Text()), nil
}

func (ts *tester) readChoice() (int, error) {
	for {
		ts.println("Input a number(0 - 10): ")
		line, err := ts.readLine()
		if err != nil {
			return 0, err
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			ts.println("Please input a number!")
			continue
		}
		if choice < choiceHelp || choice > choiceQuit {
			ts.println("Please input a choice between 0 - 10")
			continue
		}
		return choice, nil
	}
}

func (ts *tester) readKey() (int32, error) {
	for {
		ts.println("Input node number: ")
		line, err := ts.readLine()
		if err != nil {
			return 0, err
		}
		key, err := strconv.ParseInt(line, 10, 32)
		if err != nil {
			ts.println("Please input a number!")
			continue
		}
		return int32(key), nil
	}
}

func (ts *tester) readTreeKind() (tree.Kind, error) {
	for {
		ts.println("Input tree type (R or A, R is redblacktree, A is AVL tree): ")
		line, err := ts.readLine()
		if err != nil {
			return tree.AVL, err
		}
		if line == "A" || line == "R" {
			ts.println("Choice: %s", line)
			kind, _ := tree.ParseKind(line)
			return kind, nil
		}
		ts.println("Invalid choice, valid choices are [\"A\", \"R\"]")
	}
}

func (ts *tester) choose(kind tree.Kind) {
	if ts.tree != nil {
		ts.tree.Release()
	}
	ts.tree = tree.New[int32](kind, ts.opts...)
	if kind == tree.RedBlack {
		ts.println("Current Tree is Red Black Tree")
	} else {
		ts.println("Current Tree is AVL Tree")
	}
}

// run serves the menu until Quit or the end of the input.
func (ts *tester) run() (err error) {
	defer func() {
		if flushErr := ts.out.Flush(); err == nil {
			err = flushErr
		}
	}()

	ts.menu()
	for {
		ts.println("==========\nEnter 0 for help.")
		choice, err := ts.readChoice()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		switch choice {
		case choiceTree:
			kind, err := ts.readTreeKind()
			if errors.Is(err, io.EOF) {
				return nil
			} else if err != nil {
				return err
			}
			ts.choose(kind)
			continue
		case choiceQuit:
			ts.println("ByeBye!")
			return nil
		case choiceHelp:
			ts.menu()
			continue
		default:
		}

		if ts.tree == nil {
			ts.println("Choose a tree before doing other operations!")
			continue
		}
		if err = ts.operate(choice); errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
	}
}

func (ts *tester) operate(choice int) error {
	switch choice {
	case choiceInsert:
		key, err := ts.readKey()
		if err != nil {
			return err
		}
		if !ts.tree.Insert(key) {
			ts.println("The node %d already exists in the tree!", key)
		} else {
			ts.println("Insert node %d successfully", key)
		}
		ts.logger.Debug("menu insert", zap.Int32("key", key), zap.Int64("len", ts.tree.Len()))
	case choiceDelete:
		key, err := ts.readKey()
		if err != nil {
			return err
		}
		if _, ok := ts.tree.Delete(key); !ok {
			ts.println("The node %d doesn't exist in the tree!", key)
		} else {
			ts.println("Delete node %d successfully", key)
		}
		ts.logger.Debug("menu delete", zap.Int32("key", key), zap.Int64("len", ts.tree.Len()))
	case choiceCountLeaves:
		ts.println("The tree contains %d leaves", ts.tree.CountLeaves())
	case choiceHeight:
		ts.println("The tree height is %d", ts.tree.Height())
	case choiceInOrder:
		ts.println("The inorder traversal of tree is %s", formatKeys(ts.tree.InOrder()))
	case choiceIsEmpty:
		if ts.tree.IsEmpty() {
			ts.println("The tree is empty")
		} else {
			ts.println("The tree is not empty")
		}
	case choicePrint:
		return ts.tree.Print(ts.out, false)
	case choicePrintVerbose:
		return ts.tree.Print(ts.out, true)
	default:
		ts.println("Invalid choice!")
		ts.menu()
	}
	return nil
}

func formatKeys(keys []int32) string {
	sb := strings.Builder{}
	sb.WriteByte('[')
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatInt(int64(k), 10))
	}
	sb.WriteByte(']')
	return sb.String()
}

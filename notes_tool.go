//go:build ignore

package main

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

const notesToolDoc = `GoNotes Maintenance Tool

Usage:
  notes_tool <db_path> <note_id>...
  notes_tool <db_path> -i
  notes_tool -h
Options:
  -h            Show this screen.
  -i            Dump all notes and owners to STDOUT.`

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" {
		fmt.Println(notesToolDoc)
		return
	}
	if len(os.Args) < 3 {
		fmt.Println(notesToolDoc)
		return
	}

	db, err := sql.Open("sqlite3", os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Can't open database: %s\n", err)
		os.Exit(1)
	}
	defer db.Close()

	switch os.Args[2] {
	case "-i":
		rows, err := db.Query(`
			SELECT notes.id, users.username, notes.title, notes.created_at
			FROM notes JOIN users ON notes.user_id = users.id
			ORDER BY notes.id`)
		if err != nil {
			fmt.Fprintf(os.Stderr, "SQL error: %s\n", err)
			os.Exit(1)
		}
		defer rows.Close()
		for rows.Next() {
			var id int
			var username, title, createdAt string
			rows.Scan(&id, &username, &title, &createdAt)
			fmt.Printf("%d,%s,%s,%s\n", id, username, title, createdAt)
		}
	default:
		for _, arg := range os.Args[2:] {
			id, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid note ID: %s\n", arg)
				continue
			}
			_, err = db.Exec("DELETE FROM notes WHERE id = ?", id)
			if err != nil {
				fmt.Fprintf(os.Stderr, "SQL error: %s\n", err)
			} else {
				fmt.Printf("Deleted note: %d\n", id)
			}
		}
	}
}

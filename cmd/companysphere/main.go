// CompanySphere command-line client.
//
// Browse the intranet document tree, preview documents through the
// local cache, list teams, and manage meeting invitations.
//
// Sub-commands:
//
//	companysphere login [flags]          Authenticate and save a token
//	companysphere logout                 Revoke and forget the token
//	companysphere tree                   Print the folder tree
//	companysphere folder <id>            Show one folder's contents
//	companysphere open <document-id>     Preview a document via the cache
//	companysphere download <id> [-o f]   Save a document locally
//	companysphere search <query>         Filter folders and documents
//	companysphere groups [flags]         List teams
//	companysphere group <id>             Show a team with its members
//	companysphere meetings [flags]       Show the meeting calendar
//	companysphere respond <id> <status>  Answer a meeting invitation
//	companysphere passwd                 Change the account password
//	companysphere cache <status|clear>   Inspect or empty the local cache
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/Innovation-Code-SN/companysphere-go/internal/config"
	"github.com/Innovation-Code-SN/companysphere-go/internal/logging"
	"github.com/Innovation-Code-SN/companysphere-go/pkg/cache"
	"github.com/Innovation-Code-SN/companysphere-go/pkg/calendar"
	"github.com/Innovation-Code-SN/companysphere-go/pkg/filter"
	"github.com/Innovation-Code-SN/companysphere-go/pkg/gateway"
	"github.com/Innovation-Code-SN/companysphere-go/pkg/models"
	"github.com/Innovation-Code-SN/companysphere-go/pkg/nav"
	"github.com/Innovation-Code-SN/companysphere-go/pkg/tree"
	"github.com/Innovation-Code-SN/companysphere-go/pkg/viewer"
)

func main() {
	cfg := config.Load()

	if err := logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		fmt.Fprintf(os.Stderr, "logging init failed: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "login":
		err = cmdLogin(cfg, os.Args[2:])
	case "logout":
		err = cmdLogout(cfg)
	case "tree":
		err = cmdTree(cfg)
	case "folder":
		err = cmdFolder(cfg, os.Args[2:])
	case "open":
		err = cmdOpen(cfg, os.Args[2:])
	case "download":
		err = cmdDownload(cfg, os.Args[2:])
	case "search":
		err = cmdSearch(cfg, os.Args[2:])
	case "groups":
		err = cmdGroups(cfg, os.Args[2:])
	case "group":
		err = cmdGroup(cfg, os.Args[2:])
	case "meetings":
		err = cmdMeetings(cfg, os.Args[2:])
	case "respond":
		err = cmdRespond(cfg, os.Args[2:])
	case "passwd":
		err = cmdPasswd(cfg)
	case "cache":
		err = cmdCache(cfg, os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", gateway.UserMessage(err))
		logging.Debug("command failed", logging.Err(err))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: companysphere <login|logout|tree|folder|open|download|search|groups|group|meetings|respond|passwd|cache> [flags]")
}

// authedClient builds a gateway client with a token resolved from, in
// order: COMPANYSPHERE_TOKEN, the saved token file. The returned token
// file is nil when the env token was used.
func authedClient(cfg *config.Config) (*gateway.Client, *gateway.TokenFile, error) {
	gw := gateway.New(gateway.Config{BaseURL: cfg.ServerURL, Timeout: cfg.Timeout})

	if cfg.AuthToken != "" {
		gw.SetAuthToken(cfg.AuthToken)
		return gw, nil, nil
	}

	tf, err := gateway.LoadToken()
	if err != nil {
		return nil, nil, fmt.Errorf("not logged in, run 'companysphere login' first")
	}
	if tf.IsExpired(0) {
		return nil, nil, fmt.Errorf("saved token has expired, run 'companysphere login' again")
	}
	gw.SetAuthToken(tf.Token)
	return gw, tf, nil
}

func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func cmdLogin(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	server := fs.String("server", cfg.ServerURL, "Backend URL")
	email := fs.String("email", "", "Account email (prompted when empty)")
	fs.Parse(args)

	if *email == "" {
		e, err := promptLine("Email: ")
		if err != nil {
			return err
		}
		*email = e
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	gw := gateway.New(gateway.Config{BaseURL: *server, Timeout: cfg.Timeout})
	tf, err := gw.Login(context.Background(), *email, password)
	if err != nil {
		return err
	}
	if err := gateway.SaveToken(tf); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	fmt.Printf("Logged in as %s\n", tf.Email)
	return nil
}

func cmdLogout(cfg *config.Config) error {
	gw, _, err := authedClient(cfg)
	if err == nil {
		gw.Logout(context.Background())
	}
	if err := gateway.DeleteToken(); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func cmdTree(cfg *config.Config) error {
	gw, _, err := authedClient(cfg)
	if err != nil {
		return err
	}

	roots, err := gw.ListFolders(context.Background())
	if err != nil {
		return err
	}

	for _, root := range roots {
		printFolder(root, 0)
	}
	fmt.Printf("\n%d folders, %d documents\n", tree.CountFolders(roots), tree.CountDocuments(roots))
	return nil
}

func printFolder(f *models.Folder, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s[%d] %s/ (%s)\n", indent, f.ID, f.Name, f.Visibility)
	for i := range f.Documents {
		d := &f.Documents[i]
		fmt.Printf("%s  [%d] %s (%s, %d bytes)\n", indent, d.ID, d.Name, d.ContentType, d.Size)
	}
	for _, sub := range f.SubFolders {
		printFolder(sub, depth+1)
	}
}

func cmdFolder(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: companysphere folder <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid folder id %q", args[0])
	}

	gw, _, err := authedClient(cfg)
	if err != nil {
		return err
	}

	folder, err := gw.GetFolder(context.Background(), id)
	if err != nil {
		return err
	}

	// One-level browsing view: breadcrumb starts at this folder.
	stack := nav.New(folder)
	printBreadcrumb(stack)
	printFolder(folder, 0)
	return nil
}

func printBreadcrumb(s *nav.Stack) {
	names := make([]string, 0, s.Depth())
	for _, f := range s.Trail() {
		names = append(names, f.Name)
	}
	fmt.Println(strings.Join(names, " > "))
}

func cmdOpen(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: companysphere open <document-id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid document id %q", args[0])
	}

	gw, _, err := authedClient(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	docs, err := gw.ListDocuments(ctx)
	if err != nil {
		return err
	}
	var doc *models.Document
	for i := range docs {
		if docs[i].ID == id {
			doc = &docs[i]
			break
		}
	}
	if doc == nil {
		return &gateway.NotFoundError{Resource: "document", ID: id}
	}

	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		return err
	}

	session := viewer.NewSession(gw, c, *doc)
	defer session.Close()

	for {
		if err := session.Open(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Download failed: %s\n", gateway.UserMessage(err))
			answer, perr := promptLine("Retry? [y/N] ")
			if perr != nil || !strings.HasPrefix(strings.ToLower(answer), "y") {
				return err
			}
			continue
		}
		break
	}

	fmt.Printf("%s ready (%s mode)\n", doc.Name, session.Mode())
	fmt.Printf("Cached at %s\n", session.LocalPath())
	promptLine("Press enter to close the preview... ")
	return nil
}

func cmdDownload(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	out := fs.String("o", "", "Output file (defaults to the document name)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: companysphere download <document-id> [-o file]")
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid document id %q", fs.Arg(0))
	}

	gw, _, err := authedClient(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	rc, size, err := gw.DownloadDocument(ctx, id)
	if err != nil {
		return err
	}
	defer rc.Close()

	name := *out
	if name == "" {
		name = cache.SanitizeName("document_" + fs.Arg(0))
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	written, err := io.Copy(f, rc)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write %s: %w", name, err)
	}

	if size >= 0 && written != size {
		logging.Warn("size mismatch", logging.Int64("expected", size), logging.Int64("written", written))
	}
	fmt.Printf("Saved %s (%d bytes)\n", name, written)
	return nil
}

func cmdSearch(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: companysphere search <query>")
	}
	query := strings.Join(args, " ")

	gw, _, err := authedClient(cfg)
	if err != nil {
		return err
	}

	roots, err := gw.ListFolders(context.Background())
	if err != nil {
		return err
	}

	folders := filter.Match(tree.Flatten(roots), query, func(f *models.Folder) []string {
		return []string{f.Name, f.Description}
	})
	for _, f := range folders {
		fmt.Printf("folder   [%d] %s\n", f.ID, f.Name)
	}

	var docs []models.Document
	for _, f := range tree.Flatten(roots) {
		docs = append(docs, f.Documents...)
	}
	matched := filter.Match(docs, query, func(d models.Document) []string {
		return append([]string{d.Name}, d.Tags...)
	})
	for _, d := range matched {
		fmt.Printf("document [%d] %s (%s)\n", d.ID, d.Name, d.ContentType)
	}

	if len(folders) == 0 && len(matched) == 0 {
		fmt.Println("No results")
	}
	return nil
}

func cmdGroups(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("groups", flag.ExitOnError)
	employee := fs.Int64("employee", 0, "List groups of this employee")
	manager := fs.Int64("manager", 0, "List groups managed by this employee")
	fs.Parse(args)

	gw, _, err := authedClient(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var groups []models.GroupSummary
	switch {
	case *employee != 0:
		groups, err = gw.GroupsForEmployee(ctx, *employee)
	case *manager != 0:
		groups, err = gw.GroupsForManager(ctx, *manager)
	default:
		groups, err = gw.ListGroups(ctx)
	}
	if err != nil {
		return err
	}

	for _, g := range groups {
		fmt.Printf("[%d] %s — %s (%d members, managed by %s)\n",
			g.ID, g.Name, g.Description, g.MemberCount, g.Manager)
	}
	return nil
}

func cmdGroup(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: companysphere group <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid group id %q", args[0])
	}

	gw, _, err := authedClient(cfg)
	if err != nil {
		return err
	}

	detail, err := gw.GetGroup(context.Background(), id)
	if err != nil {
		return err
	}

	fmt.Printf("%s — %s\n", detail.Name, detail.Description)
	fmt.Printf("Manager: %s\n", detail.Manager)
	for _, m := range detail.Members {
		fmt.Printf("  %s <%s> %s\n", m.FullName, m.Email, m.Position)
	}
	return nil
}

func cmdMeetings(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("meetings", flag.ExitOnError)
	month := fs.String("month", "", "Restrict to a month (YYYY-MM)")
	fs.Parse(args)

	gw, _, err := authedClient(cfg)
	if err != nil {
		return err
	}

	meetings, err := gw.MyMeetings(context.Background())
	if err != nil {
		return err
	}

	if *month != "" {
		t, err := time.Parse("2006-01", *month)
		if err != nil {
			return fmt.Errorf("invalid month %q, want YYYY-MM", *month)
		}
		var kept []models.Meeting
		for _, m := range meetings {
			if m.StartTime.Year() == t.Year() && m.StartTime.Month() == t.Month() {
				kept = append(kept, m)
			}
		}
		meetings = kept
	}

	grouped := calendar.GroupByDay(meetings)
	for _, day := range calendar.SortedDays(grouped) {
		dayMeetings := grouped[day]
		fmt.Printf("%04d-%02d-%02d", day.Year, day.Month, day.Date)
		for _, status := range calendar.Indicators(dayMeetings) {
			fmt.Printf(" ●%s", calendar.StatusColor(status))
		}
		fmt.Println()
		for _, m := range dayMeetings {
			fmt.Printf("  [%d] %s-%s %s (%s)\n", m.ID,
				m.StartTime.Format("15:04"), m.EndTime.Format("15:04"),
				m.Title, m.MyResponse)
		}
	}
	if len(meetings) == 0 {
		fmt.Println("No meetings")
	}
	return nil
}

func cmdRespond(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: companysphere respond <meeting-id> <accept|decline|tentative|pending>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid meeting id %q", args[0])
	}
	status, ok := models.ParseResponseStatus(args[1])
	if !ok {
		return fmt.Errorf("unknown status %q", args[1])
	}

	gw, tf, err := authedClient(cfg)
	if err != nil {
		return err
	}
	if tf == nil || tf.EmployeeID == 0 {
		return fmt.Errorf("employee identity unknown, run 'companysphere login' first")
	}

	if err := gw.RespondToMeeting(context.Background(), id, tf.EmployeeID, status); err != nil {
		return err
	}
	fmt.Printf("Response recorded: %s\n", status)
	return nil
}

func cmdPasswd(cfg *config.Config) error {
	gw, _, err := authedClient(cfg)
	if err != nil {
		return err
	}

	current, err := promptPassword("Current password: ")
	if err != nil {
		return err
	}
	next, err := promptPassword("New password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm new password: ")
	if err != nil {
		return err
	}
	if next != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := gw.ChangePassword(context.Background(), current, next); err != nil {
		return err
	}
	fmt.Println("Password changed")
	return nil
}

func cmdCache(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: companysphere cache <status|clear>")
	}

	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		return err
	}

	switch args[0] {
	case "status":
		size, count := c.Stats()
		fmt.Printf("Cache dir: %s\n", c.Dir())
		fmt.Printf("Tracked entries: %d (%d bytes)\n", count, size)
		return nil
	case "clear":
		count, err := c.Sweep()
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d files\n", count)
		return nil
	default:
		return fmt.Errorf("unknown cache action %q", args[0])
	}
}

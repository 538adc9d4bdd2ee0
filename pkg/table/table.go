package table

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

const (
	NamespaceWidth    = 32
	StateWidth        = 16
	SubscriptionWidth = 40
)

func newPlainTable(w io.Writer, header []string) *tablewriter.Table {
	if w == nil {
		w = os.Stdout
	}
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(true)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetCenterSeparator("")
	t.SetColumnSeparator("")
	t.SetRowSeparator("")
	t.SetHeaderLine(false)
	t.SetBorder(false)
	t.SetTablePadding("\t")
	t.SetNoWhiteSpace(true)
	return t
}

// ProviderTable lists resource provider namespaces and their registration state.
type ProviderTable struct {
	table *tablewriter.Table
}

func NewProviderTable(w io.Writer) *ProviderTable {
	return &ProviderTable{table: newPlainTable(w, []string{"Namespace", "State"})}
}

func (pt *ProviderTable) AddProvider(namespace, state string) {
	if state == "" {
		state = "Unknown"
	}
	pt.table.Append([]string{
		truncate(namespace, NamespaceWidth),
		truncate(state, StateWidth),
	})
}

func (pt *ProviderTable) Render() {
	pt.table.Render()
}

// SubscriptionTable is the numbered list shown by list-subscriptions.
type SubscriptionTable struct {
	table *tablewriter.Table
	rows  int
}

func NewSubscriptionTable(w io.Writer) *SubscriptionTable {
	return &SubscriptionTable{table: newPlainTable(w, []string{"Number", "Name", "ID"})}
}

func (st *SubscriptionTable) AddSubscription(name, id string) {
	st.rows++
	st.table.Append([]string{
		strconv.Itoa(st.rows),
		truncate(name, SubscriptionWidth),
		ExtractSubscriptionUUID(id),
	})
}

func (st *SubscriptionTable) Render() {
	st.table.Render()
}

// ExtractSubscriptionUUID turns /subscriptions/<uuid> into <uuid>.
func ExtractSubscriptionUUID(subscriptionID string) string {
	parts := strings.Split(strings.TrimSuffix(subscriptionID, "/"), "/")
	return parts[len(parts)-1]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

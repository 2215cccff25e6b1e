// Package prompt renders the fixed extraction instruction sent to the model.
package prompt

import "strings"

// Fields enumerates the contract terms the model is asked to extract.
// The order matters for prompt readability only; the response normalizer
// does not rely on it.
var Fields = []string{
	"Vendor name",
	"contract id",
	"start date",
	"end date",
	"term of contract",
	"next renewal year",
	"scope",
	"type of contract (multiple or single product)",
	"contract type (SAAS/Software/Fixed Bid/OEM)",
	"number of licenses in contract",
	"cost per license",
	"total license cost",
	"renewal cost",
	"maintenance cost",
	"any other cost",
	"any one-time cost or misc cost",
	"total contract value",
	"annual contract value",
	"First Year P&L impact",
	"Second Year P&L impact",
	"Third Year P&L impact",
	"Fourth Year P&L impact",
	"Fifth Year P&L impact",
	"First year Cash payments",
	"Second year Cash payments",
	"Third year Cash payments",
	"Fourth year Cash payments",
	"Fifth year Cash payments",
	"change in scope with respect to years",
	"change in scope in ﹩ terms",
	"whether YoY change in scope is volume driven",
	"YoY change in active months of contract",
	"Increase in the cost of product/service as agreed to in the contract with vendor (CPI impact %)",
	"Increase in the cost of product/service as agreed to in the contract with vendor (CPI impact ﹩)",
	"If there is a change in rate/expense mentioned in the contract for next year",
}

const instruction = "Extract the following details from the given contract and give them in JSON format:"

// Build renders the extraction prompt for a document. The document text is
// interpolated whole; no truncation or chunking is performed. If userMessage
// is non-empty a trailing "User:" line is appended, which is how chat
// follow-ups reach the model.
func Build(documentText, userMessage string) string {
	var b strings.Builder
	b.WriteString(instruction)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(Fields, ", "))
	b.WriteString(".\n\n")
	b.WriteString("Contract text: ")
	b.WriteString(documentText)
	if userMessage != "" {
		b.WriteString("\n\nUser: ")
		b.WriteString(userMessage)
	}
	return b.String()
}

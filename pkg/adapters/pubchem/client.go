// Package pubchem resolves compound identity and properties via the PubChem
// PUG REST API. It implements ports.Resolver; the planner core never talks to
// the network itself.
//
// API reference: https://pubchem.ncbi.nlm.nih.gov/docs/pug-rest
package pubchem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/seplab/spmeplan/internal/logging"
	"github.com/seplab/spmeplan/pkg/domain"
	"github.com/seplab/spmeplan/pkg/ports"
)

const defaultBaseURL = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"

// Client queries PubChem for CAS-to-CID mappings and compound properties.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the PUG REST base URL. Used in tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithLogger configures a logger for the Client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a PubChem client. The default HTTP client uses a 10 second
// timeout; PubChem asks clients to keep request rates benign.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.Resolver = (*Client)(nil)

// CASToCIDs returns every PubChem CID registered for a CAS number, one per
// line in the TXT response.
func (c *Client) CASToCIDs(ctx context.Context, cas string) ([]int, error) {
	url := fmt.Sprintf("%s/compound/xref/rn/%s/cids/TXT", c.baseURL, cas)
	c.logger.Debug("Querying PubChem for CIDs", "cas", cas)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("querying PubChem for CAS %s: %w", cas, err)
	}

	var cids []int
	for _, line := range strings.Split(strings.TrimSpace(string(body)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cid, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("unparseable CID %q for CAS %s", line, cas)
		}
		cids = append(cids, cid)
	}

	if len(cids) == 0 {
		return nil, fmt.Errorf("%w: CAS %s", domain.ErrCompoundNotFound, cas)
	}
	return cids, nil
}

// Candidates resolves a CAS number to candidate compounds with properties.
func (c *Client) Candidates(ctx context.Context, cas string) ([]ports.Candidate, error) {
	cids, err := c.CASToCIDs(ctx, cas)
	if err != nil {
		return nil, err
	}

	candidates := make([]ports.Candidate, 0, len(cids))
	for _, cid := range cids {
		candidate, err := c.Properties(ctx, cid)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// Properties fetches IUPAC name, XLogP and molecular weight for one CID.
func (c *Client) Properties(ctx context.Context, cid int) (ports.Candidate, error) {
	url := fmt.Sprintf("%s/compound/cid/%d/property/IUPACName,XLogP,MolecularWeight/JSON", c.baseURL, cid)
	c.logger.Debug("Querying PubChem for properties", "cid", cid)

	body, err := c.get(ctx, url)
	if err != nil {
		return ports.Candidate{}, fmt.Errorf("querying PubChem for CID %d: %w", cid, err)
	}

	// PUG REST reports MolecularWeight as a string in JSON output.
	var payload struct {
		PropertyTable struct {
			Properties []struct {
				CID             int     `json:"CID"`
				IUPACName       string  `json:"IUPACName"`
				XLogP           float64 `json:"XLogP"`
				MolecularWeight string  `json:"MolecularWeight"`
			} `json:"Properties"`
		} `json:"PropertyTable"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ports.Candidate{}, fmt.Errorf("parsing PubChem properties for CID %d: %w", cid, err)
	}
	if len(payload.PropertyTable.Properties) == 0 {
		return ports.Candidate{}, fmt.Errorf("%w: CID %d", domain.ErrCompoundNotFound, cid)
	}

	p := payload.PropertyTable.Properties[0]
	mw, err := strconv.ParseFloat(p.MolecularWeight, 64)
	if err != nil {
		return ports.Candidate{}, fmt.Errorf("unparseable molecular weight %q for CID %d", p.MolecularWeight, cid)
	}

	return ports.Candidate{
		CID:             p.CID,
		IUPACName:       p.IUPACName,
		XLogP:           p.XLogP,
		MolecularWeight: mw,
	}, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Drain before the sentinel so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, domain.ErrCompoundNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

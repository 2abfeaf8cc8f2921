package utils

import (
	"encoding/json"
	"fmt"
	"hub/config"

	"github.com/go-resty/resty/v2"
)

// PanelError is an upstream panel failure. Controllers surface it as a generic
// 502 so panel internals never leak to the browser.
type PanelError struct {
	StatusCode int
	Body       string
}

func (e *PanelError) Error() string {
	return fmt.Sprintf("panel API error (status %d): %s", e.StatusCode, e.Body)
}

// PanelResources mirrors the panel's live resource usage payload.
type PanelResources struct {
	CurrentState string `json:"current_state"` // running, offline, starting, stopping
	Resources    struct {
		MemoryBytes    int64   `json:"memory_bytes"`
		CPUAbsolute    float64 `json:"cpu_absolute"`
		DiskBytes      int64   `json:"disk_bytes"`
		NetworkRxBytes int64   `json:"network_rx_bytes"`
		NetworkTxBytes int64   `json:"network_tx_bytes"`
		Uptime         int64   `json:"uptime"`
	} `json:"resources"`
	PlayersOnline int `json:"players_online"`
}

// PanelFile is one entry of a directory listing on the panel.
type PanelFile struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	IsFile     bool   `json:"is_file"`
	Mimetype   string `json:"mimetype"`
	ModifiedAt string `json:"modified_at"`
}

// PanelDatabase is a database provisioned for a server on the panel.
type PanelDatabase struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Host     string `json:"host"`
}

// PanelBackup is a snapshot stored by the panel.
type PanelBackup struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Bytes       int64  `json:"bytes"`
	Successful  bool   `json:"successful"`
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at"`
}

// PanelVariable is one startup variable of a server.
type PanelVariable struct {
	EnvVariable  string `json:"env_variable"`
	Name         string `json:"name"`
	ServerValue  string `json:"server_value"`
	DefaultValue string `json:"default_value"`
	Editable     bool   `json:"user_editable"`
}

// PanelClient relays admin actions to the external game-panel API. It holds no
// state beyond the resty client; every method is a single upstream call.
type PanelClient struct {
	client *resty.Client
}

// NewPanelClient builds a client for the configured panel.
func NewPanelClient() *PanelClient {
	client := resty.New().
		SetBaseURL(config.AppConfig.PanelApiURL).
		SetAuthToken(config.AppConfig.PanelApiKey).
		SetHeader("Accept", "application/json")
	return &PanelClient{client: client}
}

func (p *PanelClient) check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &PanelError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

// Power sends a power signal: start, stop, restart or kill.
func (p *PanelClient) Power(serverID, signal string) error {
	resp, err := p.client.R().
		SetBody(map[string]string{"signal": signal}).
		Post(fmt.Sprintf("/client/servers/%s/power", serverID))
	return p.check(resp, err)
}

// SendCommand runs a console command on the server.
func (p *PanelClient) SendCommand(serverID, command string) error {
	resp, err := p.client.R().
		SetBody(map[string]string{"command": command}).
		Post(fmt.Sprintf("/client/servers/%s/command", serverID))
	return p.check(resp, err)
}

// Resources fetches live state and resource usage.
func (p *PanelClient) Resources(serverID string) (*PanelResources, error) {
	resp, err := p.client.R().Get(fmt.Sprintf("/client/servers/%s/resources", serverID))
	if err := p.check(resp, err); err != nil {
		return nil, err
	}
	var out struct {
		Attributes PanelResources `json:"attributes"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse resources response: %v", err)
	}
	return &out.Attributes, nil
}

// ConsoleLogs fetches the recent console output.
func (p *PanelClient) ConsoleLogs(serverID string) ([]string, error) {
	resp, err := p.client.R().Get(fmt.Sprintf("/client/servers/%s/logs", serverID))
	if err := p.check(resp, err); err != nil {
		return nil, err
	}
	var out struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse logs response: %v", err)
	}
	return out.Data, nil
}

// ListFiles lists a directory on the server.
func (p *PanelClient) ListFiles(serverID, directory string) ([]PanelFile, error) {
	resp, err := p.client.R().
		SetQueryParam("directory", directory).
		Get(fmt.Sprintf("/client/servers/%s/files/list", serverID))
	if err := p.check(resp, err); err != nil {
		return nil, err
	}
	var out struct {
		Data []struct {
			Attributes PanelFile `json:"attributes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse file list response: %v", err)
	}
	files := make([]PanelFile, 0, len(out.Data))
	for _, d := range out.Data {
		files = append(files, d.Attributes)
	}
	return files, nil
}

// ReadFile returns a file's contents.
func (p *PanelClient) ReadFile(serverID, path string) (string, error) {
	resp, err := p.client.R().
		SetQueryParam("file", path).
		Get(fmt.Sprintf("/client/servers/%s/files/contents", serverID))
	if err := p.check(resp, err); err != nil {
		return "", err
	}
	return resp.String(), nil
}

// WriteFile replaces a file's contents.
func (p *PanelClient) WriteFile(serverID, path, content string) error {
	resp, err := p.client.R().
		SetQueryParam("file", path).
		SetHeader("Content-Type", "text/plain").
		SetBody(content).
		Post(fmt.Sprintf("/client/servers/%s/files/write", serverID))
	return p.check(resp, err)
}

// DeleteFiles removes files relative to root.
func (p *PanelClient) DeleteFiles(serverID, root string, files []string) error {
	resp, err := p.client.R().
		SetBody(map[string]interface{}{"root": root, "files": files}).
		Post(fmt.Sprintf("/client/servers/%s/files/delete", serverID))
	return p.check(resp, err)
}

// ListDatabases lists the server's databases.
func (p *PanelClient) ListDatabases(serverID string) ([]PanelDatabase, error) {
	resp, err := p.client.R().Get(fmt.Sprintf("/client/servers/%s/databases", serverID))
	if err := p.check(resp, err); err != nil {
		return nil, err
	}
	var out struct {
		Data []struct {
			Attributes PanelDatabase `json:"attributes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse database list response: %v", err)
	}
	dbs := make([]PanelDatabase, 0, len(out.Data))
	for _, d := range out.Data {
		dbs = append(dbs, d.Attributes)
	}
	return dbs, nil
}

// CreateDatabase provisions a new database.
func (p *PanelClient) CreateDatabase(serverID, name, remote string) (*PanelDatabase, error) {
	resp, err := p.client.R().
		SetBody(map[string]string{"database": name, "remote": remote}).
		Post(fmt.Sprintf("/client/servers/%s/databases", serverID))
	if err := p.check(resp, err); err != nil {
		return nil, err
	}
	var out struct {
		Attributes PanelDatabase `json:"attributes"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse database response: %v", err)
	}
	return &out.Attributes, nil
}

// DeleteDatabase drops a database.
func (p *PanelClient) DeleteDatabase(serverID, databaseID string) error {
	resp, err := p.client.R().Delete(fmt.Sprintf("/client/servers/%s/databases/%s", serverID, databaseID))
	return p.check(resp, err)
}

// ListBackups lists the server's backups.
func (p *PanelClient) ListBackups(serverID string) ([]PanelBackup, error) {
	resp, err := p.client.R().Get(fmt.Sprintf("/client/servers/%s/backups", serverID))
	if err := p.check(resp, err); err != nil {
		return nil, err
	}
	var out struct {
		Data []struct {
			Attributes PanelBackup `json:"attributes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse backup list response: %v", err)
	}
	backups := make([]PanelBackup, 0, len(out.Data))
	for _, d := range out.Data {
		backups = append(backups, d.Attributes)
	}
	return backups, nil
}

// CreateBackup starts a new backup.
func (p *PanelClient) CreateBackup(serverID, name string) (*PanelBackup, error) {
	resp, err := p.client.R().
		SetBody(map[string]string{"name": name}).
		Post(fmt.Sprintf("/client/servers/%s/backups", serverID))
	if err := p.check(resp, err); err != nil {
		return nil, err
	}
	var out struct {
		Attributes PanelBackup `json:"attributes"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse backup response: %v", err)
	}
	return &out.Attributes, nil
}

// DeleteBackup removes a backup.
func (p *PanelClient) DeleteBackup(serverID, backupID string) error {
	resp, err := p.client.R().Delete(fmt.Sprintf("/client/servers/%s/backups/%s", serverID, backupID))
	return p.check(resp, err)
}

// StartupVariables fetches the server's startup variables.
func (p *PanelClient) StartupVariables(serverID string) ([]PanelVariable, error) {
	resp, err := p.client.R().Get(fmt.Sprintf("/client/servers/%s/startup", serverID))
	if err := p.check(resp, err); err != nil {
		return nil, err
	}
	var out struct {
		Data []struct {
			Attributes PanelVariable `json:"attributes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse startup response: %v", err)
	}
	vars := make([]PanelVariable, 0, len(out.Data))
	for _, d := range out.Data {
		vars = append(vars, d.Attributes)
	}
	return vars, nil
}

// UpdateStartupVariable sets one startup variable.
func (p *PanelClient) UpdateStartupVariable(serverID, key, value string) (*PanelVariable, error) {
	resp, err := p.client.R().
		SetBody(map[string]string{"key": key, "value": value}).
		Put(fmt.Sprintf("/client/servers/%s/startup/variable", serverID))
	if err := p.check(resp, err); err != nil {
		return nil, err
	}
	var out struct {
		Attributes PanelVariable `json:"attributes"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse variable response: %v", err)
	}
	return &out.Attributes, nil
}

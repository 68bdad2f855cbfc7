/**
 * Copyright 2025 Adobe. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

package helper

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Reachable checks the console with tcp dial and then with http request of the root page
func Reachable(baseURL string, timeout time.Duration) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", baseURL, err)
	}
	host := u.Host
	if u.Port() == "" {
		port := "80"
		if u.Scheme == "https" {
			port = "443"
		}
		host = net.JoinHostPort(u.Hostname(), port)
	}

	d := net.Dialer{Timeout: timeout}
	conn, err := d.Dial("tcp", host)
	if err != nil {
		return fmt.Errorf("dial %s: %w", host, err)
	}
	conn.Close()

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/")
	if err != nil {
		return fmt.Errorf("get %s: %w", baseURL, err)
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("get %s: status %s", baseURL, resp.Status)
	}
	return nil
}

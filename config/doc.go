// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the engine configuration.
//
// Values come from three layers, later layers winning: the defaults returned
// by Default, an optional YAML file, and the MARIFA_* environment variables.
//
//	database:
//	  path: /var/lib/marifa
//	log_level: debug
//	analysis:
//	  min_confidence: 0.75
//	verification:
//	  source_reliability:
//	    user: 0.5
//	ai:
//	  enabled: true
//	  host: http://localhost:11434
package config

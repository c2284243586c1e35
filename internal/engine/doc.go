// Package engine sizes a solar installation.
//
// Given a zone, an average monthly energy demand and the price paid per kWh,
// Estimate runs a fixed pipeline of pure stages:
//
//  1. zone resolution: zone name to annual yield per kWp
//  2. panel sizing: panel count per wattage class
//  3. equipment sizing: inverters, gel and lithium battery banks, mounting hardware
//  4. financial summary: project cost, annual savings, tax reduction, minimum area
//  5. environmental impact: avoided CO2 and equivalent car kilometres
//
// Every count is obtained by rounding up so a system is never under-provisioned.
// All constants live in a Catalog, loaded from configuration and validated once
// by New. An Engine holds no mutable state and is safe for concurrent use.
package engine
